package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/カテゴリ/価格帯/ソート/ページング付きで一覧を返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// qはtitleとdescriptionを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	//カテゴリ絞り込み
	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price > ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price < ?", *q.MaxPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	case "title":
		tx = tx.Order("title asc").Order("id asc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新（更新できる列は列挙）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id": p.CategoryID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"inventory":   p.Inventory,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（soft delete）
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 全商品の価格を一括加算（定期ジョブ用）
func (r *ProductGormRepository) IncreaseAllPrices(ctx context.Context, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("1 = 1").
		Update("price", gorm.Expr("price + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// 商品画像を追加
func (r *ProductGormRepository) AddImage(ctx context.Context, productID int64, path string) (model.ProductImage, error) {
	img := model.ProductImage{
		ProductID: productID,
		Path:      path,
	}
	if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
		return model.ProductImage{}, err
	}
	return img, nil
}

// 商品画像を一覧取得
func (r *ProductGormRepository) ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	var images []model.ProductImage
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&images).Error; err != nil {
		return []model.ProductImage{}, err
	}
	return images, nil
}

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}
