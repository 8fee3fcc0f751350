package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なhandler一式。
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Review       *handler.ReviewHandler
	Favorite     *handler.FavoriteHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Customer     *handler.CustomerHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminUser    *handler.AdminUserHandler
	AdminJob     *handler.AdminJobHandler
}

// New はechoを組み立てて返す。起動は呼び出し側。
func New(cfg config.Config, h Handlers, userRepo repository.UserRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	registerRoutes(e, cfg, h, userRepo)

	return e
}
