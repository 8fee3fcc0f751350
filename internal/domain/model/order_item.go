package model

import "time"

// unit_priceはcheckout時点の商品価格のスナップショット。
// 後からProduct.Priceが変わっても変更しない。
type OrderItem struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64     `gorm:"not null;index" json:"order_id"`
	ProductID     int64     `gorm:"not null;index" json:"product_id"`
	TitleSnapshot string    `gorm:"type:varchar(255);not null" json:"title_snapshot"`
	UnitPrice     int64     `gorm:"not null" json:"unit_price"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
