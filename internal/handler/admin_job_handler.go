package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 定期ジョブの手動実行（ADMINのみ）。
// スケジューラと同じusecaseを呼ぶだけなので、運用時の前倒し実行に使える。
type AdminJobHandler struct {
	uc *usecase.CleanupUsecase
}

func NewAdminJobHandler(uc *usecase.CleanupUsecase) *AdminJobHandler {
	return &AdminJobHandler{uc: uc}
}

type JobResultResponse struct {
	Affected int64 `json:"affected"`
}

func (h *AdminJobHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/admin/jobs")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/reap-empty-carts", h.reapEmptyCarts)
	g.POST("/purge-refresh-tokens", h.purgeRefreshTokens)
}

func (h *AdminJobHandler) reapEmptyCarts(c echo.Context) error {
	n, err := h.uc.ReapEmptyCarts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, JobResultResponse{Affected: n})
}

func (h *AdminJobHandler) purgeRefreshTokens(c echo.Context) error {
	n, err := h.uc.PurgeExpiredRefreshTokens(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, JobResultResponse{Affected: n})
}
