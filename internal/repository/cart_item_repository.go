package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID string, productID int64) (model.CartItem, error)
	// 同一商品はプラス
	UpsertAddQuantity(ctx context.Context, cartID string, productID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	// マージ用：明細を別カートへ移す
	MoveToCart(ctx context.Context, cartItemID int64, destCartID string) error
}
