package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, reviewID int64) (model.Review, error)
	FindByProductAndCustomer(ctx context.Context, productID int64, customerID int64) (model.Review, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	Create(ctx context.Context, r model.Review) (model.Review, error)
	// 再レビューはrateとdescriptionだけ書き換える
	UpdateRateAndDescription(ctx context.Context, reviewID int64, rate int, description string) error
	DeleteByID(ctx context.Context, reviewID int64) error
}
