package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCustomerUsecase() (*usecase.CustomerUsecase, *CustomerRepoMock, *UserRepoMock) {
	customerRepo := new(CustomerRepoMock)
	userRepo := new(UserRepoMock)
	uc := usecase.NewCustomerUsecase(customerRepo, userRepo)
	return uc, customerRepo, userRepo
}

func TestCustomerUsecase_GetMe_NoProfile(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, _ := newCustomerUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{}, repo.ErrNotFound)

	_, err := uc.GetMe(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrNoCustomer)
}

func TestCustomerUsecase_GetMe_Success(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, userRepo := newCustomerUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7, UserID: 1, Location: "Tokyo"}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, PhoneNumber: "+818012345678", FirstName: "Taro"}, nil)
	customerRepo.On("FindImage", mock.Anything, int64(7)).Return(model.CustomerImage{CustomerID: 7, Path: "/img/7.png"}, nil)

	out, err := uc.GetMe(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Tokyo", out.Location)
	assert.Equal(t, "+818012345678", out.PhoneNumber)
	assert.Equal(t, "/img/7.png", out.ImagePath)
}

func TestCustomerUsecase_UpdateMe_OnlyListedFieldsChange(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, userRepo := newCustomerUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7, UserID: 1, Location: "Tokyo"}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, FirstName: "Taro", LastName: "Yamada"}, nil)
	customerRepo.On("FindImage", mock.Anything, int64(7)).Return(model.CustomerImage{}, repo.ErrNotFound)

	newLocation := "Osaka"
	customerRepo.On("Update", mock.Anything, mock.MatchedBy(func(c model.Customer) bool {
		return c.Location == "Osaka"
	})).Return(nil)

	out, err := uc.UpdateMe(ctx, 1, usecase.UpdateCustomerInput{Location: &newLocation})
	assert.NoError(t, err)
	assert.Equal(t, "Osaka", out.Location)
	//名前を触っていないのでusersは更新しない
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCustomerUsecase_UpdateMe_ClearsSecondPhoneWithEmptyString(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, userRepo := newCustomerUsecase()

	second := "+819011112222"
	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7, UserID: 1, SecondPhoneNumber: &second}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1}, nil)
	customerRepo.On("FindImage", mock.Anything, int64(7)).Return(model.CustomerImage{}, repo.ErrNotFound)

	empty := ""
	customerRepo.On("Update", mock.Anything, mock.MatchedBy(func(c model.Customer) bool {
		return c.SecondPhoneNumber == nil
	})).Return(nil)

	out, err := uc.UpdateMe(ctx, 1, usecase.UpdateCustomerInput{SecondPhoneNumber: &empty})
	assert.NoError(t, err)
	assert.Nil(t, out.SecondPhoneNumber)
}

func TestCustomerUsecase_SetImage_RequiresPath(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newCustomerUsecase()

	_, err := uc.SetImage(ctx, 1, "")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestCustomerUsecase_ListAll_DecoratesWithUser(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, userRepo := newCustomerUsecase()

	customerRepo.On("List", mock.Anything, 1, 20).Return([]model.Customer{
		{ID: 7, UserID: 1},
		{ID: 8, UserID: 2},
	}, int64(2), nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, PhoneNumber: "+818012345678"}, nil)
	//userが消えていても顧客行は返す
	userRepo.On("FindByID", mock.Anything, int64(2)).Return(nil, repo.ErrNotFound)
	customerRepo.On("FindImage", mock.Anything, mock.Anything).Return(model.CustomerImage{}, repo.ErrNotFound)

	out, err := uc.ListAll(ctx, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	assert.Len(t, out.Customers, 2)
	assert.Equal(t, "+818012345678", out.Customers[0].PhoneNumber)
	assert.Empty(t, out.Customers[1].PhoneNumber)
}
