package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。
// 条件付きUPDATEなので同時実行でも0未満にはならない。
func (r *InventoryGormRepository) DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND inventory >= ?", productID, qty).
		Update("inventory", gorm.Expr("inventory - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）
func (r *InventoryGormRepository) Increase(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("inventory", gorm.Expr("inventory + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫を「現在値」に更新し、調整履歴も残す
func (r *InventoryGormRepository) SetWithAdjustment(ctx context.Context, adminUserID int64, productID int64, newInventory int64, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//現在の在庫を取得
		var p model.Product
		if err := tx.First(&p, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		//products.inventoryを更新
		res := tx.Model(&model.Product{}).
			Where("id = ?", productID).
			Update("inventory", newInventory)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		//adjustmentsを作成
		adj := model.InventoryAdjustment{
			ProductID:   productID,
			AdminUserID: adminUserID,
			Delta:       newInventory - p.Inventory,
			Reason:      reason,
		}
		return tx.Create(&adj).Error
	})
}
