package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CustomerUsecase はプロフィールの閲覧・更新を担当します。
type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
	userRepo     repo.UserRepository
}

func NewCustomerUsecase(customerRepo repo.CustomerRepository, userRepo repo.UserRepository) *CustomerUsecase {
	return &CustomerUsecase{
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

type CustomerResponse struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	PhoneNumber       string     `json:"phone_number"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	BirthDate         *time.Time `json:"birth_date"`
	Location          string     `json:"location"`
	SecondPhoneNumber *string    `json:"second_phone_number"`
	ImagePath         string     `json:"image_path,omitempty"`
}

// 更新できる項目はここに列挙されたものだけ。nilは「変更しない」。
type UpdateCustomerInput struct {
	FirstName         *string    `json:"first_name"`
	LastName          *string    `json:"last_name"`
	Email             *string    `json:"email"`
	BirthDate         *time.Time `json:"birth_date"`
	Location          *string    `json:"location"`
	SecondPhoneNumber *string    `json:"second_phone_number"`
}

// GetMe は自分のプロフィール。
func (u *CustomerUsecase) GetMe(ctx context.Context, userID int64) (CustomerResponse, error) {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CustomerResponse{}, ErrNoCustomer
	}
	if err != nil {
		return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildResponse(ctx, customer, user), nil
}

// UpdateMe は自分のプロフィール更新。
// 名前・メールはusersへ、住所などはcustomersへ書く。
func (u *CustomerUsecase) UpdateMe(ctx context.Context, userID int64, in UpdateCustomerInput) (CustomerResponse, error) {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CustomerResponse{}, ErrNoCustomer
	}
	if err != nil {
		return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	userChanged := false
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
		userChanged = true
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
		userChanged = true
	}
	if in.Email != nil {
		user.Email = *in.Email
		userChanged = true
	}
	if userChanged {
		if err := u.userRepo.Update(ctx, user); err != nil {
			return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	customerChanged := false
	if in.BirthDate != nil {
		customer.BirthDate = in.BirthDate
		customerChanged = true
	}
	if in.Location != nil {
		customer.Location = *in.Location
		customerChanged = true
	}
	if in.SecondPhoneNumber != nil {
		if *in.SecondPhoneNumber == "" {
			customer.SecondPhoneNumber = nil
		} else {
			customer.SecondPhoneNumber = in.SecondPhoneNumber
		}
		customerChanged = true
	}
	if customerChanged {
		if err := u.customerRepo.Update(ctx, customer); err != nil {
			return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.buildResponse(ctx, customer, user), nil
}

// SetImage はプロフィール画像の登録（1人1枚なので差し替え）。
func (u *CustomerUsecase) SetImage(ctx context.Context, userID int64, path string) (CustomerResponse, error) {
	if path == "" {
		return CustomerResponse{}, NewHTTPError(http.StatusBadRequest, "path is required")
	}

	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CustomerResponse{}, ErrNoCustomer
	}
	if err != nil {
		return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.customerRepo.UpsertImage(ctx, customer.ID, path); err != nil {
		return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return CustomerResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildResponse(ctx, customer, user), nil
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// ListAll は管理者向けの顧客一覧。
func (u *CustomerUsecase) ListAll(ctx context.Context, page int, limit int) (CustomerListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	customers, total, err := u.customerRepo.List(ctx, page, limit)
	if err != nil {
		return CustomerListResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := CustomerListResponse{
		Customers: make([]CustomerResponse, 0, len(customers)),
		Total:     total,
		Page:      page,
		Limit:     limit,
	}
	for _, c := range customers {
		//userが消えていても顧客行は返す
		user, err := u.userRepo.FindByID(ctx, c.UserID)
		if err != nil || user == nil {
			user = &model.User{ID: c.UserID}
		}
		resp.Customers = append(resp.Customers, u.buildResponse(ctx, c, user))
	}
	return resp, nil
}

func (u *CustomerUsecase) buildResponse(ctx context.Context, c model.Customer, user *model.User) CustomerResponse {
	resp := CustomerResponse{
		ID:                c.ID,
		UserID:            c.UserID,
		PhoneNumber:       user.PhoneNumber,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		BirthDate:         c.BirthDate,
		Location:          c.Location,
		SecondPhoneNumber: c.SecondPhoneNumber,
	}

	//画像は無いこともある
	img, err := u.customerRepo.FindImage(ctx, c.ID)
	if err == nil {
		resp.ImagePath = img.Path
	}

	return resp
}
