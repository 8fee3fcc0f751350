package validator_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*model.User, error) {
	args := m.Called(ctx, phoneNumber)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestValidateRegister_OK(t *testing.T) {
	users := new(userRepoMock)
	users.On("FindByPhoneNumber", mock.Anything, "+818012345678").Return(nil, nil)

	v := validator.NewAuthValidator(users)
	err := v.ValidateRegister(context.Background(), "+818012345678", "password123")
	assert.NoError(t, err)
}

func TestValidateRegister_BadPhone(t *testing.T) {
	v := validator.NewAuthValidator(new(userRepoMock))

	for _, phone := range []string{"", "abc", "080-1234-5678", "12345678", "+12345678901234567890"} {
		err := v.ValidateRegister(context.Background(), phone, "password123")
		assert.ErrorIs(t, err, validator.ErrInvalidInput, "phone=%q", phone)
	}
}

func TestValidateRegister_ShortPassword(t *testing.T) {
	v := validator.NewAuthValidator(new(userRepoMock))

	err := v.ValidateRegister(context.Background(), "+818012345678", "short")
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
}

func TestValidateRegister_DuplicatePhone(t *testing.T) {
	users := new(userRepoMock)
	users.On("FindByPhoneNumber", mock.Anything, "+818012345678").Return(&model.User{ID: 1}, nil)

	v := validator.NewAuthValidator(users)
	err := v.ValidateRegister(context.Background(), "+818012345678", "password123")
	assert.ErrorIs(t, err, validator.ErrPhoneAlreadyUsed)
}

func TestValidateLogin_OK(t *testing.T) {
	v := validator.NewAuthValidator(new(userRepoMock))

	err := v.ValidateLogin(context.Background(), "+818012345678", "whatever")
	assert.NoError(t, err)
}

func TestValidateRefresh_EmptyToken(t *testing.T) {
	v := validator.NewAuthValidator(new(userRepoMock))

	err := v.ValidateRefresh(context.Background(), "  ", "ua")
	assert.ErrorIs(t, err, validator.ErrInvalidRefresh)
}
