package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ReviewUsecase は商品レビューを担当します。
type ReviewUsecase struct {
	reviewRepo   repo.ReviewRepository
	productRepo  repo.ProductRepository
	customerRepo repo.CustomerRepository
	cache        cacheInvalidator
}

// レビューは商品詳細キャッシュに含まれるので書き込み時に捨てる
type cacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

func NewReviewUsecase(
	reviewRepo repo.ReviewRepository,
	productRepo repo.ProductRepository,
	customerRepo repo.CustomerRepository,
	cache cacheInvalidator,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:   reviewRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		cache:        cache,
	}
}

type UpsertReviewInput struct {
	Rate        int    `json:"rate"`
	Description string `json:"description"`
}

// Upsert はレビュー投稿。同じ（商品, 顧客）なら上書き。
func (u *ReviewUsecase) Upsert(ctx context.Context, userID int64, productID int64, in UpsertReviewInput) (model.Review, error) {
	if in.Rate < 1 || in.Rate > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rate must be 1-5")
	}
	in.Description = strings.TrimSpace(in.Description)

	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, ErrNoCustomer
	}
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing, err := u.reviewRepo.FindByProductAndCustomer(ctx, productID, customer.ID)
	if err == nil {
		//再レビューは上書き
		if err := u.reviewRepo.UpdateRateAndDescription(ctx, existing.ID, in.Rate, in.Description); err != nil {
			return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		existing.Rate = in.Rate
		existing.Description = in.Description
		_ = u.cache.InvalidateAll(ctx)
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.reviewRepo.Create(ctx, model.Review{
		ProductID:   productID,
		CustomerID:  customer.ID,
		Rate:        in.Rate,
		Description: in.Description,
	})
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)
	return created, nil
}

// Delete は自分のレビュー削除。他人のレビューは404。
func (u *ReviewUsecase) Delete(ctx context.Context, userID int64, productID int64) error {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNoCustomer
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	review, err := u.reviewRepo.FindByProductAndCustomer(ctx, productID, customer.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.reviewRepo.DeleteByID(ctx, review.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)
	return nil
}

// DeleteAsAdmin は管理者による任意レビューの削除。
func (u *ReviewUsecase) DeleteAsAdmin(ctx context.Context, reviewID int64) error {
	if _, err := u.reviewRepo.FindByID(ctx, reviewID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "review not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.reviewRepo.DeleteByID(ctx, reviewID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)
	return nil
}

// ListByProduct は商品のレビュー一覧。
func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reviews, nil
}
