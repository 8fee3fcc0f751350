package handler

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラーをHTTPレスポンスに変換する。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	if ie, ok := usecase.AsInsufficientInventory(err); ok {
		//checkout時は409（カートには入っていたが確定できなかった）
		return c.JSON(http.StatusConflict, ErrorResponse{Error: ie.Error()})
	}

	switch {
	case errors.Is(err, usecase.ErrNoCustomer):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no customer profile"})
	case errors.Is(err, usecase.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cart is empty"})
	case errors.Is(err, repo.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	case errors.Is(err, usecase.ErrUnauthorized), errors.Is(err, usecase.ErrSecurityIncident):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, usecase.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, usecase.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// カート追加は在庫不足でも400（入力の問題として扱う）
func writeAddToCartError(c echo.Context, err error) error {
	if ie, ok := usecase.AsInsufficientInventory(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ie.Error()})
	}
	return writeError(c, err)
}

// AuthJWTが積んだuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	userID, ok := raw.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
