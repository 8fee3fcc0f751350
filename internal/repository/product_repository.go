package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	MinPrice   *int64
	MaxPrice   *int64
	Sort       string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	// 定期ジョブ用：全商品の価格を一括で加算
	IncreaseAllPrices(ctx context.Context, delta int64) (int64, error)

	AddImage(ctx context.Context, productID int64, path string) (model.ProductImage, error)
	ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}
