package model

import "time"

// カートの持ち主は顧客か匿名セッションのどちらか一方。
// customer_idはuniqueなので1顧客につきカートは最大1つ。
// 匿名カートはcustomer_id=NULLで、自身のID（opaqueなUUID）だけで引く。
type Cart struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID *int64    `gorm:"uniqueIndex" json:"customer_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
