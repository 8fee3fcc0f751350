package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// FavoriteUsecase はお気に入りのトグルと一覧を担当します。
type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, productRepo repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

type ToggleFavoriteResponse struct {
	Added    bool  `json:"added"`
	TargetID int64 `json:"target_id"`
}

type FavoriteResponse struct {
	ID       int64              `json:"id"`
	Kind     model.FavoriteKind `json:"kind"`
	TargetID int64              `json:"target_id"`
	Title    string             `json:"title,omitempty"`
	Price    int64              `json:"price,omitempty"`
}

// ToggleProduct は商品のお気に入りを付け外しする。
// 既にあれば外す・無ければ付ける。結果をAddedで返す。
func (u *FavoriteUsecase) ToggleProduct(ctx context.Context, userID int64, productID int64) (ToggleFavoriteResponse, error) {
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ToggleFavoriteResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return ToggleFavoriteResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing, err := u.favoriteRepo.Find(ctx, userID, model.FavoriteKindProduct, productID)
	if err == nil {
		if err := u.favoriteRepo.DeleteByID(ctx, existing.ID); err != nil {
			return ToggleFavoriteResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return ToggleFavoriteResponse{Added: false, TargetID: productID}, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return ToggleFavoriteResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := u.favoriteRepo.Create(ctx, model.FavoriteItem{
		UserID:   userID,
		Kind:     model.FavoriteKindProduct,
		TargetID: productID,
	}); err != nil {
		//同時トグルでunique違反になったら「付いている」扱い
		return ToggleFavoriteResponse{Added: true, TargetID: productID}, nil
	}

	return ToggleFavoriteResponse{Added: true, TargetID: productID}, nil
}

// ListMine は自分のお気に入り一覧（商品情報を付けて返す）。
func (u *FavoriteUsecase) ListMine(ctx context.Context, userID int64) ([]FavoriteResponse, error) {
	favorites, err := u.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		r := FavoriteResponse{
			ID:       f.ID,
			Kind:     f.Kind,
			TargetID: f.TargetID,
		}

		//今はPRODUCTだけ。対象が消えていても一覧には残す
		if f.Kind == model.FavoriteKindProduct {
			if p, err := u.productRepo.FindByID(ctx, f.TargetID); err == nil {
				r.Title = p.Title
				r.Price = p.Price
			}
		}

		resp = append(resp, r)
	}
	return resp, nil
}
