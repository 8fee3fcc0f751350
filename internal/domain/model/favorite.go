package model

import "time"

// お気に入り対象の種類。
// 今はPRODUCTだけ（kind+target_idの組で対象を指す）
type FavoriteKind string

const (
	FavoriteKindProduct FavoriteKind = "PRODUCT"
)

type FavoriteItem struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64        `gorm:"not null;index;uniqueIndex:idx_favorites_user_kind_target" json:"user_id"`
	Kind      FavoriteKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_favorites_user_kind_target" json:"kind"`
	TargetID  int64        `gorm:"not null;uniqueIndex:idx_favorites_user_kind_target" json:"target_id"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
}
