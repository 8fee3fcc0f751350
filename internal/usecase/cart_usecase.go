package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// リクエストが「誰のカートか」を表す。
// 認証済みならCustomerID、匿名ならセッションに保存されたcart_id。
type Identity struct {
	CustomerID    int64  // 0なら匿名
	SessionCartID string // 匿名セッションのcart_id（無ければ空）
}

func (id Identity) Authenticated() bool {
	return id.CustomerID > 0
}

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// CartIDを必ず返す。匿名の呼び出し側はこれをセッションに保存する。
type CartResponse struct {
	CartID string             `json:"cart_id"`
	Items  []CartItemResponse `json:"items"`
	Total  int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// Resolve はこのidentityのカートを見つける。無ければ作る。
// - 認証済み: customer_idで引く。無ければその顧客に紐づけて作成。
// - 匿名+セッションID有り: IDで引く。消えていれば作り直しへフォールスルー。
// - 匿名+セッションID無し: 新規作成。
// 新規の匿名同士が同時に来ると2つできるが、これは許容（空カートは後で掃除）。
func (u *CartUsecase) Resolve(ctx context.Context, id Identity) (model.Cart, error) {
	if id.Authenticated() {
		cart, err := u.cartRepo.FindByCustomerID(ctx, id.CustomerID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		newCart := model.Cart{
			ID:         uuid.NewString(),
			CustomerID: &id.CustomerID,
		}
		if err := u.cartRepo.Create(ctx, newCart); err != nil {
			// 同時作成で負けた場合は既存を拾い直す（customer_idはunique）
			cart, findErr := u.cartRepo.FindByCustomerID(ctx, id.CustomerID)
			if findErr == nil {
				return cart, nil
			}
			return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return newCart, nil
	}

	if id.SessionCartID != "" {
		cart, err := u.cartRepo.FindByID(ctx, id.SessionCartID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//期限切れなどで消えている→新規作成へ
	}

	newCart := model.Cart{ID: uuid.NewString()}
	if err := u.cartRepo.Create(ctx, newCart); err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return newCart, nil
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, id Identity) (CartResponse, error) {
	cart, err := u.Resolve(ctx, id)
	if err != nil {
		return CartResponse{}, err
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
// 追加後の合計数量が在庫を超えるならInsufficientInventoryで弾く。
// ここでの在庫読みはロックしない目安のチェック。確定はcheckoutで再検証する。
func (u *CartUsecase) AddToCart(ctx context.Context, id Identity, in AddCartInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.Resolve(ctx, id)
	if err != nil {
		return CartResponse{}, err
	}

	//商品チェック
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//既存数量を調べて上限チェック
	var existingQty int64 = 0
	existing, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	if err == nil {
		existingQty = existing.Quantity
	} else if !errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newQty := existingQty + in.Quantity
	if newQty > p.Inventory {
		return CartResponse{}, &InsufficientInventoryError{
			ProductID: p.ID,
			Title:     p.Title,
			Requested: newQty,
			Available: p.Inventory,
		}
	}

	// Upsert（同一商品は加算）
	if err := u.cartItemRepo.UpsertAddQuantity(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更（所有チェック＋在庫チェック）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, id Identity, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, item, err := u.findOwnedItem(ctx, id, cartItemID)
	if err != nil {
		return CartResponse{}, err
	}

	//商品の在庫チェック
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if in.Quantity > p.Inventory {
		return CartResponse{}, &InsufficientInventoryError{
			ProductID: p.ID,
			Title:     p.Title,
			Requested: in.Quantity,
			Available: p.Inventory,
		}
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, id Identity, cartItemID int64) (CartResponse, error) {
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cart, _, err := u.findOwnedItem(ctx, id, cartItemID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// identityのカートを（作らずに）引いて、明細がそこに属するか確認する。
// 他人の明細は「存在しない扱い」にする。
func (u *CartUsecase) findOwnedItem(ctx context.Context, id Identity, cartItemID int64) (model.Cart, model.CartItem, error) {
	var cart model.Cart
	var err error

	if id.Authenticated() {
		cart, err = u.cartRepo.FindByCustomerID(ctx, id.CustomerID)
	} else if id.SessionCartID != "" {
		cart, err = u.cartRepo.FindByID(ctx, id.SessionCartID)
	} else {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if item.CartID != cart.ID {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return cart, item, nil
}

// cartIDの明細をまとめてCartResponseを作る。
// 価格は現在の商品価格（確定前なのでスナップショットではない）。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID string) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			//削除済み商品は表示しない
			continue
		}

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})

		total += p.Price * it.Quantity
	}

	return CartResponse{CartID: cartID, Items: respItems, Total: total}, nil
}
