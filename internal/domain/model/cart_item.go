package model

import "time"

// カートの明細。
// （cart, product）で一意。同じ商品の再追加は数量加算。
// 価格はここでは持たない（確定はcheckout時のOrderItemで行う）。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
