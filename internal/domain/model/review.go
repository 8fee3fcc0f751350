package model

import "time"

// 同じ（商品, 顧客）の再レビューは上書き
type Review struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64     `gorm:"not null;index;uniqueIndex:idx_reviews_product_customer" json:"product_id"`
	CustomerID  int64     `gorm:"not null;index;uniqueIndex:idx_reviews_product_customer" json:"customer_id"`
	Rate        int       `gorm:"not null" json:"rate"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
