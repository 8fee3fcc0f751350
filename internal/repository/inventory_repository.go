package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算（条件付きUPDATE）。falseなら在庫不足。
	DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	Increase(ctx context.Context, productID int64, qty int64) error

	// 管理者の在庫設定＋調整履歴
	SetWithAdjustment(ctx context.Context, adminUserID int64, productID int64, newInventory int64, reason string) error
}
