package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// 管理者画面用の一覧
func (r *CustomerGormRepository) List(ctx context.Context, page int, limit int) ([]model.Customer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []model.Customer
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// 更新対象の列は明示する
func (r *CustomerGormRepository) Update(ctx context.Context, c model.Customer) error {
	res := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"birth_date":          c.BirthDate,
			"location":            c.Location,
			"second_phone_number": c.SecondPhoneNumber,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 画像は1人1枚なのでcustomer_idで upsert
func (r *CustomerGormRepository) UpsertImage(ctx context.Context, customerID int64, path string) error {
	img := model.CustomerImage{
		CustomerID: customerID,
		Path:       path,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"path", "updated_at"}),
		}).
		Create(&img).Error
}

func (r *CustomerGormRepository) FindImage(ctx context.Context, customerID int64) (model.CustomerImage, error) {
	var img model.CustomerImage
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CustomerImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CustomerImage{}, err
	}
	return img, nil
}
