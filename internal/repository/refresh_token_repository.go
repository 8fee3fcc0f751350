package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// リフレッシュトークンの保存・取得・更新・削除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	MarkUsed(ctx context.Context, tokenID string) error
	DeleteByID(ctx context.Context, tokenID string) error
	DeleteAllByUserID(ctx context.Context, userID int64) error
	// 定期ジョブ用：期限切れを掃除
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
