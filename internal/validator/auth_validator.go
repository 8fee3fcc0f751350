package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"storefront/internal/repository"
	"storefront/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// 電話番号が既に使用済み
	ErrPhoneAlreadyUsed = errors.New("phone number already used")

	// refresh tokenが不正
	ErrInvalidRefresh = errors.New("invalid refresh")
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, phoneNumber string, password string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)

	// 必須チェック
	if phoneNumber == "" || password == "" {
		return ErrInvalidInput
	}

	// 電話番号形式
	if !isPhoneLike(phoneNumber) {
		return ErrInvalidInput
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return ErrInvalidInput
	}

	// 電話番号重複チェック（DBが必要）
	u, err := v.users.FindByPhoneNumber(ctx, phoneNumber)
	if err == nil && u != nil {
		return ErrPhoneAlreadyUsed
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, phoneNumber string, password string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)

	// 必須チェック
	if phoneNumber == "" || password == "" {
		return ErrInvalidInput
	}

	// 電話番号形式
	if !isPhoneLike(phoneNumber) {
		return ErrInvalidInput
	}

	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return ErrInvalidRefresh
	}

	return nil
}

// logout 入力を検証
func (v *authValidator) ValidateLogout(ctx context.Context) error {
	return nil
}

// 強制ログアウトの入力を検証
func (v *authValidator) ValidateForceLogout(ctx context.Context, targetUserID int64) error {
	if targetUserID <= 0 {
		return ErrInvalidInput
	}
	return nil
}

var phoneRe = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// 簡易な電話番号形式をチェック（E.164寄り、ハイフン無し）
func isPhoneLike(s string) bool {
	return phoneRe.MatchString(s)
}
