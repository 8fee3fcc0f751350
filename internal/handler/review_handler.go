package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// レビュー投稿・削除（要ログイン）。閲覧はproduct_handler側。
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type UpsertReviewRequest struct {
	Rate        int    `json:"rate"`
	Description string `json:"description"`
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/products/:id/reviews")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.PUT("", h.upsert)
	g.DELETE("", h.delete)

	//管理者は任意のレビューをIDで削除できる
	admin := e.Group("/admin/reviews")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.DELETE("/:id", h.adminDelete)
}

func (h *ReviewHandler) adminDelete(c echo.Context) error {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteAsAdmin(c.Request().Context(), reviewID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHandler) upsert(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpsertReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Upsert(c.Request().Context(), userID, productID, usecase.UpsertReviewInput{
		Rate:        req.Rate,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), userID, productID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
