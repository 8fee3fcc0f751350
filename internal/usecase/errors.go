package usecase

import (
	"errors"
	"fmt"
)

// checkout/カート操作で使う業務エラー。
// handlerがHTTPステータスへ変換する。
var (
	// customerプロフィールが無いユーザーのcheckout
	ErrNoCustomer = errors.New("no customer profile")
	// 明細ゼロ（またはカート自体が無い）状態でのcheckout
	ErrEmptyCart = errors.New("cart empty")
)

// 在庫不足。どの商品で弾かれたかを必ず持つ。
type InsufficientInventoryError struct {
	ProductID int64
	Title     string
	Requested int64
	Available int64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %d (%s): requested %d, available %d",
		e.ProductID, e.Title, e.Requested, e.Available)
}

func AsInsufficientInventory(err error) (*InsufficientInventoryError, bool) {
	var ie *InsufficientInventoryError
	ok := errors.As(err, &ie)
	return ie, ok
}

// HTTPErrorはステータスを決め打ちしたいCRUD系usecaseが使う。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
