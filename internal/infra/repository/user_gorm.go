package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *UserGormRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// IDでユーザーを1件取得
func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// 電話番号でユーザーを1件取得
func (r *UserGormRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("phone_number = ?", phoneNumber).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// ユーザーを更新。
func (r *UserGormRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// token_versionを+1 します。
func (r *UserGormRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1))

	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
