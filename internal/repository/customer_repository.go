package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	FindByUserID(ctx context.Context, userID int64) (model.Customer, error)
	// 管理者画面用の一覧
	List(ctx context.Context, page int, limit int) ([]model.Customer, int64, error)
	// 更新できる項目は列挙して明示する（動的なフィールドコピーはしない）
	Update(ctx context.Context, c model.Customer) error

	// プロフィール画像は1:1なのでupsert
	UpsertImage(ctx context.Context, customerID int64, path string) error
	FindImage(ctx context.Context, customerID int64) (model.CustomerImage, error)
}
