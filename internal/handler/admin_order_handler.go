package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者の注文操作（詳細閲覧とpayment_status更新）。
type AdminOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/:id", h.getDetail)
	g.PATCH("/:id/payment-status", h.updatePaymentStatus)
}

// 管理者は所有者を問わず注文詳細を見られる
func (h *AdminOrderHandler) getDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrderDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updatePaymentStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdatePaymentStatus(c.Request().Context(), id, model.PaymentStatus(req.PaymentStatus)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
