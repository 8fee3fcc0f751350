package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// IDでカートを取得（匿名カートはこれで引く）
func (r *CartGormRepository) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 顧客のカートを取得（1顧客につき最大1つ）
func (r *CartGormRepository) FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// checkout用。行ロックを取って同じカートへの同時checkoutを直列化する。
// 負けた側はカート削除後に見るので ErrNotFound になる。
func (r *CartGormRepository) FindByCustomerIDForUpdate(ctx context.Context, customerID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) Create(ctx context.Context, cart model.Cart) error {
	return r.db.WithContext(ctx).Create(&cart).Error
}

// 匿名カートを顧客に付け替える
func (r *CartGormRepository) AttachCustomer(ctx context.Context, cartID string, customerID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"customer_id": customerID,
			"updated_at":  time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カートと明細を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//cart_itemsを先に削除（cascade相当）
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", cartID).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// 明細ゼロのカートをまとめて削除（定期ジョブ用）。
// 作りたての空カートを消さないようcutoffより古いものだけ。
func (r *CartGormRepository) DeleteEmptyBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM cart_items WHERE cart_items.cart_id = carts.id)").
		Delete(&model.Cart{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
