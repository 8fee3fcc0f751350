package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// 電話番号でログインする（usernameの代わり）
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PhoneNumber  string     `gorm:"type:varchar(15);uniqueIndex;not null" json:"phone_number"`
	Email        string     `gorm:"type:varchar(255);not null" json:"email"`
	FirstName    string     `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(255);not null" json:"last_name"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	TokenVersion int        `gorm:"not null;default:0" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
