package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "storefront/internal/repository"
)

// ログイン時のカート引き継ぎ。
// ログイン処理から同期的に呼ぶ（イベント連携はしない）。
type CartMergeUsecase struct {
	txManager    repo.TransactionManager
	customerRepo repo.CustomerRepository
}

func NewCartMergeUsecase(txManager repo.TransactionManager, customerRepo repo.CustomerRepository) *CartMergeUsecase {
	return &CartMergeUsecase{
		txManager:    txManager,
		customerRepo: customerRepo,
	}
}

// MergeOnLogin はセッションの匿名カートをログインした顧客のカートへ取り込む。
//   - 顧客カートが無い: 匿名カートのcustomer_idを付け替えるだけ（明細は動かさない）
//   - 顧客カートが有る: 明細を顧客カートへ移す。同一商品は数量を合算。
//     匿名カートは空になるので削除する。
//
// 在庫の再検証はここではしない（checkoutで必ず検証するため）。
// セッションIDが無い・カートが既に消えている場合は何もしないで正常終了。
func (u *CartMergeUsecase) MergeOnLogin(ctx context.Context, userID int64, sessionCartID string) error {
	if sessionCartID == "" {
		return nil
	}

	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		//管理者などプロフィール無しのログイン。カートはそのまま
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		anonCart, err := r.Carts().FindByID(ctx, sessionCartID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if anonCart.CustomerID != nil {
			//既に誰かのカート。横取りさせない
			return nil
		}

		custCart, err := r.Carts().FindByCustomerIDForUpdate(ctx, customer.ID)
		if errors.Is(err, repo.ErrNotFound) {
			//付け替えだけで済むケース
			return r.Carts().AttachCustomer(ctx, anonCart.ID, customer.ID)
		}
		if err != nil {
			return err
		}

		anonItems, err := r.CartItems().ListByCartID(ctx, anonCart.ID)
		if err != nil {
			return err
		}

		for _, it := range anonItems {
			existing, err := r.CartItems().FindByCartAndProduct(ctx, custCart.ID, it.ProductID)
			if err == nil {
				//同一商品は合算して匿名側を消す
				if err := r.CartItems().UpdateQuantity(ctx, existing.ID, existing.Quantity+it.Quantity); err != nil {
					return err
				}
				if err := r.CartItems().DeleteByID(ctx, it.ID); err != nil {
					return err
				}
				continue
			}
			if !errors.Is(err, repo.ErrNotFound) {
				return err
			}

			if err := r.CartItems().MoveToCart(ctx, it.ID, custCart.ID); err != nil {
				return err
			}
		}

		//空になった匿名カートは残さない
		return r.Carts().DeleteByID(ctx, anonCart.ID)
	})

	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cart merge failed")
	}
	return nil
}
