package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ProductUsecase はカタログの読み取りと管理者CRUDを担当します。
type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
	reviewRepo    repo.ReviewRepository
	cache         *cache.ProductCache
	maxPrice      int64
}

func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
	reviewRepo repo.ReviewRepository,
	productCache *cache.ProductCache,
	cfg config.Config,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		reviewRepo:    reviewRepo,
		cache:         productCache,
		maxPrice:      cfg.MaxProductPrice,
	}
}

type ProductResponse struct {
	ID          int64                `json:"id"`
	CategoryID  *int64               `json:"category_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Price       int64                `json:"price"`
	Inventory   int64                `json:"inventory"`
	Images      []model.ProductImage `json:"images,omitempty"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type ProductDetailResponse struct {
	ProductResponse
	Reviews     []model.Review `json:"reviews"`
	AverageRate float64        `json:"average_rate"`
}

type CreateProductInput struct {
	CategoryID  *int64 `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Inventory   int64  `json:"inventory"`
}

type UpdateProductInput struct {
	CategoryID  *int64  `json:"category_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
}

type SetInventoryInput struct {
	Inventory int64  `json:"inventory"`
	Reason    string `json:"reason"`
}

// List は検索付き一覧。条件ごとにキャッシュする。
func (u *ProductUsecase) List(ctx context.Context, q repo.ProductListQuery) (ProductListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	cacheKey := listCacheKey(q)

	var cached ProductListResponse
	if hit, err := u.cache.GetList(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	products, total, err := u.productRepo.List(ctx, q)
	if err != nil {
		return ProductListResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    total,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p, nil))
	}

	//キャッシュ書き込み失敗は無視（次回DBから読めばいい）
	_ = u.cache.SetList(ctx, cacheKey, resp)

	return resp, nil
}

// GetDetail はレビュー込みの商品詳細。
func (u *ProductUsecase) GetDetail(ctx context.Context, productID int64) (ProductDetailResponse, error) {
	var cached ProductDetailResponse
	if hit, err := u.cache.GetDetail(ctx, productID, &cached); err == nil && hit {
		return cached, nil
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDetailResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductDetailResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	images, err := u.productRepo.ListImages(ctx, productID)
	if err != nil {
		return ProductDetailResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return ProductDetailResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var avg float64
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rate
		}
		avg = float64(sum) / float64(len(reviews))
	}

	resp := ProductDetailResponse{
		ProductResponse: toProductResponse(p, images),
		Reviews:         reviews,
		AverageRate:     avg,
	}

	_ = u.cache.SetDetail(ctx, productID, resp)

	return resp, nil
}

// Create は管理者の商品登録。
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (ProductResponse, error) {
	if err := u.validateTitle(in.Title); err != nil {
		return ProductResponse{}, err
	}
	if err := u.validatePrice(in.Price); err != nil {
		return ProductResponse{}, err
	}
	if in.Inventory < 0 {
		return ProductResponse{}, NewHTTPError(http.StatusBadRequest, "inventory must be zero or positive")
	}
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ProductResponse{}, NewHTTPError(http.StatusBadRequest, "category not found")
			}
			return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Inventory:   in.Inventory,
	})
	if err != nil {
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)

	return toProductResponse(created, nil), nil
}

// Update は部分更新。nilの項目は触らない。
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (ProductResponse, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Title != nil {
		if err := u.validateTitle(*in.Title); err != nil {
			return ProductResponse{}, err
		}
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if err := u.validatePrice(*in.Price); err != nil {
			return ProductResponse{}, err
		}
		p.Price = *in.Price
	}
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ProductResponse{}, NewHTTPError(http.StatusBadRequest, "category not found")
			}
			return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p.CategoryID = in.CategoryID
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)

	return toProductResponse(p, nil), nil
}

// Delete は論理削除。既存の注文明細からは参照され続ける。
func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)
	return nil
}

// SetInventory は管理者の在庫設定。調整履歴を残す。
func (u *ProductUsecase) SetInventory(ctx context.Context, adminUserID int64, productID int64, in SetInventoryInput) error {
	if in.Inventory < 0 {
		return NewHTTPError(http.StatusBadRequest, "inventory must be zero or positive")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetWithAdjustment(ctx, adminUserID, productID, in.Inventory, in.Reason); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)
	return nil
}

// AddImage は商品画像の追加（保存済みのパスを登録する）。
func (u *ProductUsecase) AddImage(ctx context.Context, productID int64, path string) (model.ProductImage, error) {
	if path == "" {
		return model.ProductImage{}, NewHTTPError(http.StatusBadRequest, "path is required")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.ProductImage{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.ProductImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	img, err := u.productRepo.AddImage(ctx, productID, path)
	if err != nil {
		return model.ProductImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.cache.InvalidateAll(ctx)
	return img, nil
}

// ListCategories はカテゴリ一覧。
func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cs, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cs, nil
}

// CreateCategory は管理者のカテゴリ登録。
func (u *ProductUsecase) CreateCategory(ctx context.Context, title string) (model.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{Title: title})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *ProductUsecase) validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if len(title) > 255 {
		return NewHTTPError(http.StatusBadRequest, "title too long")
	}
	return nil
}

// 価格は正で、設定上限まで
func (u *ProductUsecase) validatePrice(price int64) error {
	if price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if price > u.maxPrice {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("price must be at most %d", u.maxPrice))
	}
	return nil
}

func toProductResponse(p model.Product, images []model.ProductImage) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Inventory:   p.Inventory,
		Images:      images,
	}
}

func listCacheKey(q repo.ProductListQuery) string {
	cat := "-"
	if q.CategoryID != nil {
		cat = fmt.Sprintf("%d", *q.CategoryID)
	}
	minP, maxP := "-", "-"
	if q.MinPrice != nil {
		minP = fmt.Sprintf("%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		maxP = fmt.Sprintf("%d", *q.MaxPrice)
	}
	return fmt.Sprintf("p%d:l%d:q%s:c%s:min%s:max%s:s%s", q.Page, q.Limit, q.Q, cat, minP, maxP, q.Sort)
}
