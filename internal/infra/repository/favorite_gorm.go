package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

// DI
func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) Find(ctx context.Context, userID int64, kind model.FavoriteKind, targetID int64) (model.FavoriteItem, error) {
	var f model.FavoriteItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND target_id = ?", userID, kind, targetID).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FavoriteItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.FavoriteItem{}, err
	}
	return f, nil
}

func (r *FavoriteGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.FavoriteItem, error) {
	var items []model.FavoriteItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error; err != nil {
		return []model.FavoriteItem{}, err
	}
	return items, nil
}

func (r *FavoriteGormRepository) Create(ctx context.Context, f model.FavoriteItem) (model.FavoriteItem, error) {
	if err := r.db.WithContext(ctx).Create(&f).Error; err != nil {
		return model.FavoriteItem{}, err
	}
	return f, nil
}

func (r *FavoriteGormRepository) DeleteByID(ctx context.Context, favoriteID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.FavoriteItem{}, favoriteID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
