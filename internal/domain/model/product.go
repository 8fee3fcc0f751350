package model

import (
	"time"

	"gorm.io/gorm"
)

// inventoryは0未満にならない（checkoutの条件付きUPDATEで保証）
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  *int64         `gorm:"index" json:"category_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Inventory   int64          `gorm:"not null" json:"inventory"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Path      string    `gorm:"type:varchar(512);not null" json:"path"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
