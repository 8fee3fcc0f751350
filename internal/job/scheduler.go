package job

import (
	"context"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/usecase"
)

// Scheduler はアプリ内の定期ジョブを回す。
// ジョブの実体はCleanupUsecaseにあり、管理APIからも同じものを呼べる。
type Scheduler struct {
	cleanup *usecase.CleanupUsecase
	cfg     config.Config
}

func NewScheduler(cleanup *usecase.CleanupUsecase, cfg config.Config) *Scheduler {
	return &Scheduler{cleanup: cleanup, cfg: cfg}
}

// Start はctxが生きている間ジョブを回し続ける。
// goroutineで呼ぶこと。
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx, "reap_empty_carts", s.cfg.ReapInterval, func(ctx context.Context) (int64, error) {
		return s.cleanup.ReapEmptyCarts(ctx)
	})

	go s.loop(ctx, "purge_refresh_tokens", time.Hour, func(ctx context.Context) (int64, error) {
		return s.cleanup.PurgeExpiredRefreshTokens(ctx)
	})

	//価格の一括加算は設定されているときだけ
	if s.cfg.PriceBumpDelta != 0 && s.cfg.PriceBumpInterval > 0 {
		go s.loop(ctx, "bump_prices", s.cfg.PriceBumpInterval, func(ctx context.Context) (int64, error) {
			return s.cleanup.BumpAllPrices(ctx, s.cfg.PriceBumpDelta)
		})
	}
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, fn func(ctx context.Context) (int64, error)) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := fn(ctx)
			if err != nil {
				log.Printf("job %s: %v", name, err)
				continue
			}
			if n > 0 {
				log.Printf("job %s: affected=%d", name, n)
			}
		}
	}
}
