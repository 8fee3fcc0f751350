package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	// 注文作成後に変更できるのはpayment_statusだけ
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
