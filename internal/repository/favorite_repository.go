package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type FavoriteRepository interface {
	Find(ctx context.Context, userID int64, kind model.FavoriteKind, targetID int64) (model.FavoriteItem, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.FavoriteItem, error)
	Create(ctx context.Context, f model.FavoriteItem) (model.FavoriteItem, error)
	DeleteByID(ctx context.Context, favoriteID int64) error
}
