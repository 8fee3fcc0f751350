package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type RefreshTokenGormRepository struct {
	db *gorm.DB
}

// DI
func NewRefreshTokenGormRepository(db *gorm.DB) *RefreshTokenGormRepository {
	return &RefreshTokenGormRepository{db: db}
}

func (r *RefreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *RefreshTokenGormRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var t model.RefreshToken

	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&t).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &t, nil
}

// ローテーション時に旧トークンへ印を付ける
func (r *RefreshTokenGormRepository) MarkUsed(ctx context.Context, tokenID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ? AND used_at IS NULL", tokenID).
		Update("used_at", time.Now())

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RefreshTokenGormRepository) DeleteByID(ctx context.Context, tokenID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", tokenID).
		Delete(&model.RefreshToken{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 強制ログアウト・リプレイ検知時にまとめて失効
func (r *RefreshTokenGormRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RefreshToken{}).Error
}

// 期限切れの掃除（定期ジョブ用）
func (r *RefreshTokenGormRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&model.RefreshToken{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
