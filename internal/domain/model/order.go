package model

import "time"

// 決済連携は未実装なのでpayment_statusはプレースホルダ
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusComplete PaymentStatus = "COMPLETE"
	PaymentStatusFailed   PaymentStatus = "FAILED"
)

// checkout成功時にだけ作られ、以後payment_status以外は変更しない
type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    int64         `gorm:"not null;index" json:"customer_id"`
	PlacedAt      time.Time     `gorm:"not null;index" json:"placed_at"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	TotalPrice    int64         `gorm:"not null" json:"total_price"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
