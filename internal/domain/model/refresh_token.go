package model

import "time"

// refresh tokenは平文を保存しない（sha256ハッシュのみ）
type RefreshToken struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	TokenHash string     `gorm:"not null;uniqueIndex" json:"-"`
	UserAgent string     `gorm:"not null" json:"user_agent"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	UsedAt    *time.Time `gorm:"index" json:"used_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
