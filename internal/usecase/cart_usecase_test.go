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

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, itemRepo, productRepo)
	return uc, cartRepo, itemRepo, productRepo
}

func TestCartUsecase_Resolve_AnonymousCreatesNewCart(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, _ := newCartUsecase()

	cartRepo.On("Create", mock.Anything, mock.MatchedBy(func(c model.Cart) bool {
		return c.ID != "" && c.CustomerID == nil
	})).Return(nil)

	cart, err := uc.Resolve(ctx, usecase.Identity{})
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Nil(t, cart.CustomerID)
	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_Resolve_AnonymousReusesSessionCart(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, _ := newCartUsecase()

	existing := model.Cart{ID: "cart-uuid-1"}
	cartRepo.On("FindByID", mock.Anything, "cart-uuid-1").Return(existing, nil)

	cart, err := uc.Resolve(ctx, usecase.Identity{SessionCartID: "cart-uuid-1"})
	assert.NoError(t, err)
	assert.Equal(t, "cart-uuid-1", cart.ID)
	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartUsecase_Resolve_StaleSessionFallsBackToNewCart(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, _ := newCartUsecase()

	cartRepo.On("FindByID", mock.Anything, "gone").Return(model.Cart{}, repo.ErrNotFound)
	cartRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	cart, err := uc.Resolve(ctx, usecase.Identity{SessionCartID: "gone"})
	assert.NoError(t, err)
	assert.NotEqual(t, "gone", cart.ID)
	assert.NotEmpty(t, cart.ID)
}

func TestCartUsecase_Resolve_CustomerFindsExistingCart(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, _ := newCartUsecase()

	cid := int64(7)
	cartRepo.On("FindByCustomerID", mock.Anything, cid).Return(model.Cart{ID: "c7", CustomerID: &cid}, nil)

	cart, err := uc.Resolve(ctx, usecase.Identity{CustomerID: cid})
	assert.NoError(t, err)
	assert.Equal(t, "c7", cart.ID)
}

func TestCartUsecase_Resolve_CustomerCreateRaceFallsBackToFind(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, _ := newCartUsecase()

	cid := int64(7)
	winner := model.Cart{ID: "winner", CustomerID: &cid}

	cartRepo.On("FindByCustomerID", mock.Anything, cid).Return(model.Cart{}, repo.ErrNotFound).Once()
	cartRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	cartRepo.On("FindByCustomerID", mock.Anything, cid).Return(winner, nil).Once()

	cart, err := uc.Resolve(ctx, usecase.Identity{CustomerID: cid})
	assert.NoError(t, err)
	assert.Equal(t, "winner", cart.ID)
}

func TestCartUsecase_AddToCart_Success(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("FindByID", mock.Anything, "cart1").Return(model.Cart{ID: "cart1"}, nil)
	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Title: "Coffee", Price: 500, Inventory: 5}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, "cart1", int64(10)).Return(model.CartItem{}, repo.ErrNotFound)
	itemRepo.On("UpsertAddQuantity", mock.Anything, "cart1", int64(10), int64(2)).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart1").Return([]model.CartItem{
		{ID: 1, CartID: "cart1", ProductID: 10, Quantity: 2},
	}, nil)

	out, err := uc.AddToCart(ctx, usecase.Identity{SessionCartID: "cart1"}, usecase.AddCartInput{ProductID: 10, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, "cart1", out.CartID)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(1000), out.Total)
}

func TestCartUsecase_AddToCart_ExceedsInventory(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	//在庫5のところへ既存3+追加3
	cartRepo.On("FindByID", mock.Anything, "cart1").Return(model.Cart{ID: "cart1"}, nil)
	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Title: "Coffee", Price: 500, Inventory: 5}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, "cart1", int64(10)).Return(model.CartItem{ID: 1, CartID: "cart1", ProductID: 10, Quantity: 3}, nil)

	_, err := uc.AddToCart(ctx, usecase.Identity{SessionCartID: "cart1"}, usecase.AddCartInput{ProductID: 10, Quantity: 3})

	ie, ok := usecase.AsInsufficientInventory(err)
	assert.True(t, ok)
	assert.Equal(t, int64(10), ie.ProductID)
	assert.Equal(t, int64(6), ie.Requested)
	assert.Equal(t, int64(5), ie.Available)
	itemRepo.AssertNotCalled(t, "UpsertAddQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, productRepo := newCartUsecase()

	cartRepo.On("FindByID", mock.Anything, "cart1").Return(model.Cart{ID: "cart1"}, nil)
	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, usecase.Identity{SessionCartID: "cart1"}, usecase.AddCartInput{ProductID: 99, Quantity: 1})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := newCartUsecase()

	_, err := uc.AddToCart(ctx, usecase.Identity{SessionCartID: "cart1"}, usecase.AddCartInput{ProductID: 10, Quantity: 0})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestCartUsecase_UpdateCartItem_OtherCartsItemIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("FindByID", mock.Anything, "mine").Return(model.Cart{ID: "mine"}, nil)
	//明細は他人のカートに属している
	itemRepo.On("FindByID", mock.Anything, int64(5)).Return(model.CartItem{ID: 5, CartID: "theirs", ProductID: 10, Quantity: 1}, nil)

	_, err := uc.UpdateCartItem(ctx, usecase.Identity{SessionCartID: "mine"}, 5, usecase.UpdateCartItemInput{Quantity: 2})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartItem_ExceedsInventory(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("FindByID", mock.Anything, "mine").Return(model.Cart{ID: "mine"}, nil)
	itemRepo.On("FindByID", mock.Anything, int64(5)).Return(model.CartItem{ID: 5, CartID: "mine", ProductID: 10, Quantity: 1}, nil)
	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Title: "Coffee", Inventory: 3}, nil)

	_, err := uc.UpdateCartItem(ctx, usecase.Identity{SessionCartID: "mine"}, 5, usecase.UpdateCartItemInput{Quantity: 4})

	ie, ok := usecase.AsInsufficientInventory(err)
	assert.True(t, ok)
	assert.Equal(t, int64(4), ie.Requested)
	assert.Equal(t, int64(3), ie.Available)
}

func TestCartUsecase_DeleteCartItem_Success(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("FindByID", mock.Anything, "mine").Return(model.Cart{ID: "mine"}, nil)
	itemRepo.On("FindByID", mock.Anything, int64(5)).Return(model.CartItem{ID: 5, CartID: "mine", ProductID: 10, Quantity: 1}, nil)
	itemRepo.On("DeleteByID", mock.Anything, int64(5)).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "mine").Return([]model.CartItem{}, nil)

	out, err := uc.DeleteCartItem(ctx, usecase.Identity{SessionCartID: "mine"}, 5)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

func TestCartUsecase_GetCart_SkipsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("FindByID", mock.Anything, "cart1").Return(model.Cart{ID: "cart1"}, nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart1").Return([]model.CartItem{
		{ID: 1, CartID: "cart1", ProductID: 10, Quantity: 2},
		{ID: 2, CartID: "cart1", ProductID: 11, Quantity: 1},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Title: "Coffee", Price: 500}, nil)
	productRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Product{}, repo.ErrNotFound)

	out, err := uc.GetCart(ctx, usecase.Identity{SessionCartID: "cart1"})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(1000), out.Total)
}
