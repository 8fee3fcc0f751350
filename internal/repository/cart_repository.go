package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	FindByID(ctx context.Context, cartID string) (model.Cart, error)
	FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)
	// checkout用：カート行をFOR UPDATEで取得して同時checkoutを直列化する
	FindByCustomerIDForUpdate(ctx context.Context, customerID int64) (model.Cart, error)
	Create(ctx context.Context, cart model.Cart) error
	// 匿名カートを顧客に付け替える（ログインマージのO(1)ケース）
	AttachCustomer(ctx context.Context, cartID string, customerID int64) error
	// カート削除（明細はcascadeで消える）
	DeleteByID(ctx context.Context, cartID string) error
	// 明細ゼロのカートをまとめて削除（定期ジョブ用）
	DeleteEmptyBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
