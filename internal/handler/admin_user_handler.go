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

// 管理者のユーザー操作（強制ログアウト）。
type AdminUserHandler struct {
	uc *usecase.AuthUsecase
}

func NewAdminUserHandler(uc *usecase.AuthUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/admin/users")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/:id/force-logout", h.forceLogout)
}

// token_versionを上げて全refresh tokenを失効させる
func (h *AdminUserHandler) forceLogout(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ForceLogout(c.Request().Context(), targetID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
