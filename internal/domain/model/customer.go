package model

import "time"

// 非管理者ユーザーにつき必ず1件（登録時に作成）
type Customer struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	BirthDate         *time.Time `json:"birth_date"`
	Location          string     `gorm:"type:text" json:"location"`
	SecondPhoneNumber *string    `gorm:"type:varchar(15);uniqueIndex" json:"second_phone_number"`
	CreatedAt         time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// プロフィール画像は1人1枚（保存先のパスだけ持つ）
type CustomerImage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64     `gorm:"not null;uniqueIndex" json:"customer_id"`
	Path       string    `gorm:"type:varchar(512);not null" json:"path"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
