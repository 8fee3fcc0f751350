package usecase

import (
	"context"
	"time"

	repo "storefront/internal/repository"
)

// CleanupUsecase は定期ジョブの実体。
// スケジューラからもop用エンドポイントからも呼べるように、
// 各メソッドは1回分の実行として完結している。
type CleanupUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	rtRepo      repo.RefreshTokenRepository
	minAge      time.Duration
}

func NewCleanupUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	rtRepo repo.RefreshTokenRepository,
	minAge time.Duration,
) *CleanupUsecase {
	return &CleanupUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		rtRepo:      rtRepo,
		minAge:      minAge,
	}
}

// ReapEmptyCarts は明細ゼロのまま一定時間触られていないカートを消す。
// 作りたてのカート（追加操作の途中かもしれない）はminAgeで守る。
func (u *CleanupUsecase) ReapEmptyCarts(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-u.minAge)
	return u.cartRepo.DeleteEmptyBefore(ctx, cutoff)
}

// BumpAllPrices は全商品の価格を一括加算する。
func (u *CleanupUsecase) BumpAllPrices(ctx context.Context, delta int64) (int64, error) {
	if delta == 0 {
		return 0, nil
	}
	return u.productRepo.IncreaseAllPrices(ctx, delta)
}

// PurgeExpiredRefreshTokens は期限切れrefresh tokenを消す。
func (u *CleanupUsecase) PurgeExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return u.rtRepo.DeleteExpiredBefore(ctx, time.Now())
}
