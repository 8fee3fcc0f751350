package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/cache"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewUsecase() (*usecase.ReviewUsecase, *ReviewRepoMock, *ProductRepoMock, *CustomerRepoMock) {
	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)
	customerRepo := new(CustomerRepoMock)
	uc := usecase.NewReviewUsecase(reviewRepo, productRepo, customerRepo, cache.NewProductCache(nil))
	return uc, reviewRepo, productRepo, customerRepo
}

func TestReviewUsecase_Upsert_CreatesNewReview(t *testing.T) {
	ctx := context.Background()
	uc, reviewRepo, productRepo, customerRepo := newReviewUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7}, nil)
	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10}, nil)
	reviewRepo.On("FindByProductAndCustomer", mock.Anything, int64(10), int64(7)).Return(model.Review{}, repo.ErrNotFound)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 10 && r.CustomerID == 7 && r.Rate == 4
	})).Return(model.Review{ID: 1, ProductID: 10, CustomerID: 7, Rate: 4}, nil)

	out, err := uc.Upsert(ctx, 1, 10, usecase.UpsertReviewInput{Rate: 4, Description: "good"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
}

func TestReviewUsecase_Upsert_OverwritesExistingReview(t *testing.T) {
	ctx := context.Background()
	uc, reviewRepo, productRepo, customerRepo := newReviewUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7}, nil)
	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10}, nil)
	reviewRepo.On("FindByProductAndCustomer", mock.Anything, int64(10), int64(7)).Return(model.Review{ID: 3, ProductID: 10, CustomerID: 7, Rate: 2}, nil)
	reviewRepo.On("UpdateRateAndDescription", mock.Anything, int64(3), 5, "changed my mind").Return(nil)

	out, err := uc.Upsert(ctx, 1, 10, usecase.UpsertReviewInput{Rate: 5, Description: "changed my mind"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, 5, out.Rate)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewUsecase_Upsert_RejectsInvalidRate(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := newReviewUsecase()

	for _, rate := range []int{0, 6, -1} {
		_, err := uc.Upsert(ctx, 1, 10, usecase.UpsertReviewInput{Rate: rate})
		he, ok := usecase.AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, 400, he.Status)
	}
}

func TestReviewUsecase_Upsert_RequiresCustomerProfile(t *testing.T) {
	ctx := context.Background()
	uc, _, _, customerRepo := newReviewUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{}, repo.ErrNotFound)

	_, err := uc.Upsert(ctx, 1, 10, usecase.UpsertReviewInput{Rate: 4})
	assert.ErrorIs(t, err, usecase.ErrNoCustomer)
}

func TestReviewUsecase_Delete_OwnReviewOnly(t *testing.T) {
	ctx := context.Background()
	uc, reviewRepo, _, customerRepo := newReviewUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7}, nil)
	reviewRepo.On("FindByProductAndCustomer", mock.Anything, int64(10), int64(7)).Return(model.Review{}, repo.ErrNotFound)

	err := uc.Delete(ctx, 1, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestReviewUsecase_DeleteAsAdmin_DeletesAnyReview(t *testing.T) {
	ctx := context.Background()
	uc, reviewRepo, _, _ := newReviewUsecase()

	reviewRepo.On("FindByID", mock.Anything, int64(55)).Return(model.Review{ID: 55, CustomerID: 99}, nil)
	reviewRepo.On("DeleteByID", mock.Anything, int64(55)).Return(nil)

	err := uc.DeleteAsAdmin(ctx, 55)
	assert.NoError(t, err)
}

func TestReviewUsecase_DeleteAsAdmin_UnknownReview(t *testing.T) {
	ctx := context.Background()
	uc, reviewRepo, _, _ := newReviewUsecase()

	reviewRepo.On("FindByID", mock.Anything, int64(55)).Return(model.Review{}, repo.ErrNotFound)

	err := uc.DeleteAsAdmin(ctx, 55)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	reviewRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}
