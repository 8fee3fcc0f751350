package usecase_test

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*model.User, error) {
	args := m.Called(ctx, phoneNumber)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) List(ctx context.Context, page int, limit int) ([]model.Customer, int64, error) {
	args := m.Called(ctx, page, limit)
	cs, _ := args.Get(0).([]model.Customer)
	total, _ := args.Get(1).(int64)
	return cs, total, args.Error(2)
}

func (m *CustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepoMock) UpsertImage(ctx context.Context, customerID int64, path string) error {
	args := m.Called(ctx, customerID, path)
	return args.Error(0)
}

func (m *CustomerRepoMock) FindImage(ctx context.Context, customerID int64) (model.CustomerImage, error) {
	args := m.Called(ctx, customerID)
	img, _ := args.Get(0).(model.CustomerImage)
	return img, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) IncreaseAllPrices(ctx context.Context, delta int64) (int64, error) {
	args := m.Called(ctx, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) AddImage(ctx context.Context, productID int64, path string) (model.ProductImage, error) {
	args := m.Called(ctx, productID, path)
	img, _ := args.Get(0).(model.ProductImage)
	return img, args.Error(1)
}

func (m *ProductRepoMock) ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	args := m.Called(ctx, productID)
	imgs, _ := args.Get(0).([]model.ProductImage)
	return imgs, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) Increase(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) SetWithAdjustment(ctx context.Context, adminUserID int64, productID int64, newInventory int64, reason string) error {
	args := m.Called(ctx, adminUserID, productID, newInventory, reason)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByCustomerIDForUpdate(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Create(ctx context.Context, cart model.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *CartRepoMock) AttachCustomer(ctx context.Context, cartID string, customerID int64) error {
	args := m.Called(ctx, cartID, customerID)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByID(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteEmptyBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID string, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) UpsertAddQuantity(ctx context.Context, cartID string, productID int64, addQty int64) error {
	args := m.Called(ctx, cartID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) MoveToCart(ctx context.Context, cartItemID int64, destCartID string) error {
	args := m.Called(ctx, cartItemID, destCartID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) FindByID(ctx context.Context, reviewID int64) (model.Review, error) {
	args := m.Called(ctx, reviewID)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) FindByProductAndCustomer(ctx context.Context, productID int64, customerID int64) (model.Review, error) {
	args := m.Called(ctx, productID, customerID)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	rs, _ := args.Get(0).([]model.Review)
	return rs, args.Error(1)
}

func (m *ReviewRepoMock) Create(ctx context.Context, r model.Review) (model.Review, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Review)
	return created, args.Error(1)
}

func (m *ReviewRepoMock) UpdateRateAndDescription(ctx context.Context, reviewID int64, rate int, description string) error {
	args := m.Called(ctx, reviewID, rate, description)
	return args.Error(0)
}

func (m *ReviewRepoMock) DeleteByID(ctx context.Context, reviewID int64) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

type FavoriteRepoMock struct{ mock.Mock }

func (m *FavoriteRepoMock) Find(ctx context.Context, userID int64, kind model.FavoriteKind, targetID int64) (model.FavoriteItem, error) {
	args := m.Called(ctx, userID, kind, targetID)
	f, _ := args.Get(0).(model.FavoriteItem)
	return f, args.Error(1)
}

func (m *FavoriteRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.FavoriteItem, error) {
	args := m.Called(ctx, userID)
	fs, _ := args.Get(0).([]model.FavoriteItem)
	return fs, args.Error(1)
}

func (m *FavoriteRepoMock) Create(ctx context.Context, f model.FavoriteItem) (model.FavoriteItem, error) {
	args := m.Called(ctx, f)
	created, _ := args.Get(0).(model.FavoriteItem)
	return created, args.Error(1)
}

func (m *FavoriteRepoMock) DeleteByID(ctx context.Context, favoriteID int64) error {
	args := m.Called(ctx, favoriteID)
	return args.Error(0)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Fake TxManager
// =====================

// WithinTxに渡されたfnを、差し込んだmockのままで実行する。
// ロールバック相当はfnがerrorを返したことの検証で代替する。
type FakeTxRepos struct {
	CustomersRepo  *CustomerRepoMock
	ProductsRepo   *ProductRepoMock
	InventoryRepo  *InventoryRepoMock
	CartsRepo      *CartRepoMock
	CartItemsRepo  *CartItemRepoMock
	OrdersRepo     *OrderRepoMock
	OrderItemsRepo *OrderItemRepoMock
}

func NewFakeTxRepos() *FakeTxRepos {
	return &FakeTxRepos{
		CustomersRepo:  new(CustomerRepoMock),
		ProductsRepo:   new(ProductRepoMock),
		InventoryRepo:  new(InventoryRepoMock),
		CartsRepo:      new(CartRepoMock),
		CartItemsRepo:  new(CartItemRepoMock),
		OrdersRepo:     new(OrderRepoMock),
		OrderItemsRepo: new(OrderItemRepoMock),
	}
}

func (f *FakeTxRepos) Customers() repo.CustomerRepository   { return f.CustomersRepo }
func (f *FakeTxRepos) Products() repo.ProductRepository     { return f.ProductsRepo }
func (f *FakeTxRepos) Inventory() repo.InventoryRepository  { return f.InventoryRepo }
func (f *FakeTxRepos) Carts() repo.CartRepository           { return f.CartsRepo }
func (f *FakeTxRepos) CartItems() repo.CartItemRepository   { return f.CartItemsRepo }
func (f *FakeTxRepos) Orders() repo.OrderRepository         { return f.OrdersRepo }
func (f *FakeTxRepos) OrderItems() repo.OrderItemRepository { return f.OrderItemsRepo }

type FakeTxManager struct {
	Repos *FakeTxRepos
}

func NewFakeTxManager(repos *FakeTxRepos) *FakeTxManager {
	return &FakeTxManager{Repos: repos}
}

func (m *FakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}
