package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers, userRepo repository.UserRepository) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//公開
	h.Product.RegisterRoutes(e)

	//認証
	h.Auth.RegisterRoutes(e, cfg, userRepo)

	//カート（認証は任意）
	h.Cart.RegisterRoutes(e, cfg)

	//要ログイン
	h.Review.RegisterRoutes(e, cfg, userRepo)
	h.Favorite.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.Customer.RegisterRoutes(e, cfg, userRepo)

	//ADMIN
	h.AdminProduct.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.AdminUser.RegisterRoutes(e, cfg, userRepo)
	h.AdminJob.RegisterRoutes(e, cfg, userRepo)
}
