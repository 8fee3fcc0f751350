package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderUsecase() (*usecase.OrderUsecase, *CustomerRepoMock, *OrderRepoMock, *OrderItemRepoMock, *FakeTxRepos) {
	customerRepo := new(CustomerRepoMock)
	orderRepo := new(OrderRepoMock)
	itemRepo := new(OrderItemRepoMock)
	txRepos := NewFakeTxRepos()
	uc := usecase.NewOrderUsecase(NewFakeTxManager(txRepos), customerRepo, orderRepo, itemRepo)
	return uc, customerRepo, orderRepo, itemRepo, txRepos
}

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, _, _, tx := newOrderUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7, UserID: 1}, nil)

	cid := int64(7)
	tx.CartsRepo.On("FindByCustomerIDForUpdate", mock.Anything, cid).Return(model.Cart{ID: "cart7", CustomerID: &cid}, nil)
	tx.CartItemsRepo.On("ListByCartID", mock.Anything, "cart7").Return([]model.CartItem{
		{ID: 1, CartID: "cart7", ProductID: 10, Quantity: 2},
		{ID: 2, CartID: "cart7", ProductID: 11, Quantity: 1},
	}, nil)
	tx.ProductsRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Title: "Coffee", Price: 500, Inventory: 5}, nil)
	tx.ProductsRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Title: "Mug", Price: 1200, Inventory: 3}, nil)
	tx.InventoryRepo.On("DecreaseIfEnough", mock.Anything, int64(10), int64(2)).Return(true, nil)
	tx.InventoryRepo.On("DecreaseIfEnough", mock.Anything, int64(11), int64(1)).Return(true, nil)

	tx.OrdersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.CustomerID == 7 && o.TotalPrice == 2200 && o.PaymentStatus == model.PaymentStatusPending
	})).Return(int64(100), nil)

	//単価・タイトルは確定時点のスナップショット
	tx.OrderItemsRepo.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].UnitPrice == 500 && items[0].TitleSnapshot == "Coffee" &&
			items[1].UnitPrice == 1200 && items[1].TitleSnapshot == "Mug"
	})).Return(nil)

	tx.CartsRepo.On("DeleteByID", mock.Anything, "cart7").Return(nil)

	out, err := uc.PlaceOrder(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), out.ID)
	assert.Equal(t, int64(2200), out.TotalPrice)
	assert.Equal(t, model.PaymentStatusPending, out.PaymentStatus)
	assert.Len(t, out.Items, 2)
	tx.CartsRepo.AssertCalled(t, "DeleteByID", mock.Anything, "cart7")
}

func TestOrderUsecase_PlaceOrder_NoCustomerProfile(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, _, _, _ := newOrderUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrNoCustomer)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, _, _, tx := newOrderUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7}, nil)
	cid := int64(7)
	tx.CartsRepo.On("FindByCustomerIDForUpdate", mock.Anything, cid).Return(model.Cart{ID: "cart7", CustomerID: &cid}, nil)
	tx.CartItemsRepo.On("ListByCartID", mock.Anything, "cart7").Return([]model.CartItem{}, nil)

	_, err := uc.PlaceOrder(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)
}

// 並行checkoutで負けた側：勝った側がカートを消しているのでEmptyCart扱い
func TestOrderUsecase_PlaceOrder_CartAlreadyGone(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, _, _, tx := newOrderUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7}, nil)
	tx.CartsRepo.On("FindByCustomerIDForUpdate", mock.Anything, int64(7)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)
}

func TestOrderUsecase_PlaceOrder_InsufficientInventoryRollsBack(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, _, _, tx := newOrderUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7}, nil)
	cid := int64(7)
	tx.CartsRepo.On("FindByCustomerIDForUpdate", mock.Anything, cid).Return(model.Cart{ID: "cart7", CustomerID: &cid}, nil)
	tx.CartItemsRepo.On("ListByCartID", mock.Anything, "cart7").Return([]model.CartItem{
		{ID: 1, CartID: "cart7", ProductID: 10, Quantity: 2},
		{ID: 2, CartID: "cart7", ProductID: 11, Quantity: 4},
	}, nil)
	tx.ProductsRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Title: "Coffee", Price: 500, Inventory: 5}, nil)
	tx.ProductsRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Title: "Mug", Price: 1200, Inventory: 3}, nil)
	tx.InventoryRepo.On("DecreaseIfEnough", mock.Anything, int64(10), int64(2)).Return(true, nil)
	//2品目で在庫不足
	tx.InventoryRepo.On("DecreaseIfEnough", mock.Anything, int64(11), int64(4)).Return(false, nil)

	_, err := uc.PlaceOrder(ctx, 1)

	ie, ok := usecase.AsInsufficientInventory(err)
	assert.True(t, ok)
	assert.Equal(t, int64(11), ie.ProductID)
	assert.Equal(t, int64(4), ie.Requested)

	//注文は一切作られない
	tx.OrdersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	tx.CartsRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_ListMyOrders_NoProfileReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, _, _, _ := newOrderUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{}, repo.ErrNotFound)

	out, err := uc.ListMyOrders(ctx, 1, 1, 20)
	assert.NoError(t, err)
	assert.Empty(t, out.Orders)
}

func TestOrderUsecase_GetMyOrderDetail_OtherCustomersOrderIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc, customerRepo, orderRepo, _, _ := newOrderUsecase()

	customerRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Customer{ID: 7}, nil)
	orderRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Order{ID: 100, CustomerID: 8}, nil)

	_, err := uc.GetMyOrderDetail(ctx, 1, 100)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestOrderUsecase_UpdatePaymentStatus_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _, _ := newOrderUsecase()

	err := uc.UpdatePaymentStatus(ctx, 100, model.PaymentStatus("REFUNDED"))

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// 管理者は所有者を問わず注文詳細を見られる
func TestOrderUsecase_GetOrderDetail_AdminSeesAnyOrder(t *testing.T) {
	ctx := context.Background()
	uc, _, orderRepo, itemRepo, _ := newOrderUsecase()

	orderRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Order{ID: 100, CustomerID: 8, TotalPrice: 1000}, nil)
	itemRepo.On("ListByOrderID", mock.Anything, int64(100)).Return([]model.OrderItem{
		{ID: 1, ProductID: 10, TitleSnapshot: "Coffee", UnitPrice: 500, Quantity: 2},
	}, nil)

	out, err := uc.GetOrderDetail(ctx, 100)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), out.TotalPrice)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(1000), out.Items[0].Subtotal)
}
