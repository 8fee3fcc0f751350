package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	customers  repo.CustomerRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *txReposGorm) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) Carts() repo.CartRepository           { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			customers:  NewCustomerGormRepository(tx),
			products:   NewProductGormRepository(tx),
			inventory:  NewInventoryGormRepository(tx),
			carts:      NewCartGormRepository(tx),
			cartItems:  NewCartItemGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
		}
		return fn(r)
	})
}
