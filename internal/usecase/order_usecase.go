package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// OrderUsecase はcheckoutと注文照会を担当します。
type OrderUsecase struct {
	txManager    repo.TransactionManager
	customerRepo repo.CustomerRepository
	orderRepo    repo.OrderRepository
	itemRepo     repo.OrderItemRepository
}

func NewOrderUsecase(
	txManager repo.TransactionManager,
	customerRepo repo.CustomerRepository,
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
) *OrderUsecase {
	return &OrderUsecase{
		txManager:    txManager,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
	}
}

type OrderItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type OrderResponse struct {
	ID            int64               `json:"id"`
	PlacedAt      time.Time           `json:"placed_at"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	TotalPrice    int64               `json:"total_price"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// PlaceOrder はカートの中身を1つのトランザクションで注文に確定する。
//  1. カート行をFOR UPDATEで取得（同時checkoutの直列化）
//  2. 明細ごとに条件付きUPDATEで在庫減算。足りなければ全体をロールバック
//  3. 注文＋明細（タイトル・単価はこの時点のスナップショット）を作成
//  4. カートを削除。負けた並行checkoutはカートが消えているのでErrEmptyCart
//
// 決済は未連携なのでpayment_statusはPENDINGで作る。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64) (OrderResponse, error) {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderResponse{}, ErrNoCustomer
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var resp OrderResponse

	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByCustomerIDForUpdate(ctx, customer.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		orderItems := make([]model.OrderItem, 0, len(items))
		respItems := make([]OrderItemResponse, 0, len(items))
		var total int64 = 0

		for _, it := range items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				//カートに入った後で商品が消された
				return &InsufficientInventoryError{
					ProductID: it.ProductID,
					Requested: it.Quantity,
					Available: 0,
				}
			}
			if err != nil {
				return err
			}

			ok, err := r.Inventory().DecreaseIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				//部分確定はしない。txごとロールバック
				return &InsufficientInventoryError{
					ProductID: p.ID,
					Title:     p.Title,
					Requested: it.Quantity,
					Available: p.Inventory,
				}
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:     p.ID,
				TitleSnapshot: p.Title,
				UnitPrice:     p.Price,
				Quantity:      it.Quantity,
			})
			total += p.Price * it.Quantity
		}

		order := model.Order{
			CustomerID:    customer.ID,
			PlacedAt:      time.Now(),
			PaymentStatus: model.PaymentStatusPending,
			TotalPrice:    total,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		//注文確定したカートは消す（空カートを残さない）
		if err := r.Carts().DeleteByID(ctx, cart.ID); err != nil {
			return err
		}

		for _, oi := range orderItems {
			respItems = append(respItems, OrderItemResponse{
				ProductID: oi.ProductID,
				Title:     oi.TitleSnapshot,
				UnitPrice: oi.UnitPrice,
				Quantity:  oi.Quantity,
				Subtotal:  oi.UnitPrice * oi.Quantity,
			})
		}

		resp = OrderResponse{
			ID:            orderID,
			PlacedAt:      order.PlacedAt,
			PaymentStatus: order.PaymentStatus,
			TotalPrice:    total,
			Items:         respItems,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return OrderResponse{}, ErrEmptyCart
		}
		if _, ok := AsInsufficientInventory(err); ok {
			return OrderResponse{}, err
		}
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "checkout failed")
	}

	return resp, nil
}

// UpdatePaymentStatus は管理者による決済ステータスの更新。
// 注文で後から変えられるのはこのカラムだけ。
func (u *OrderUsecase) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	switch status {
	case model.PaymentStatusPending, model.PaymentStatusComplete, model.PaymentStatusFailed:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}

	if err := u.orderRepo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ListMyOrders は自分の注文履歴（新しい順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		//プロフィール未作成なら注文もゼロ
		return OrderListResponse{Orders: []OrderResponse{}, Page: page, Limit: limit}, nil
	}
	if err != nil {
		return OrderListResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orders, total, err := u.orderRepo.ListByCustomerID(ctx, customer.ID, page, limit)
	if err != nil {
		return OrderListResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, OrderResponse{
			ID:            o.ID,
			PlacedAt:      o.PlacedAt,
			PaymentStatus: o.PaymentStatus,
			TotalPrice:    o.TotalPrice,
		})
	}
	return resp, nil
}

// GetMyOrderDetail は明細込みの注文詳細。他人の注文は404。
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderResponse, error) {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.CustomerID != customer.ID {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return u.buildDetail(ctx, order)
}

// GetOrderDetail は管理者向けの注文詳細（所有者を問わない）。
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, orderID int64) (OrderResponse, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildDetail(ctx, order)
}

func (u *OrderUsecase) buildDetail(ctx context.Context, order model.Order) (OrderResponse, error) {
	items, err := u.itemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		respItems = append(respItems, OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Title:     it.TitleSnapshot,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.UnitPrice * it.Quantity,
		})
	}

	return OrderResponse{
		ID:            order.ID,
		PlacedAt:      order.PlacedAt,
		PaymentStatus: order.PaymentStatus,
		TotalPrice:    order.TotalPrice,
		Items:         respItems,
	}, nil
}
