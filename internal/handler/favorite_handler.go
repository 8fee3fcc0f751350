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

// お気に入り（要ログイン）。
type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

func (h *FavoriteHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/favorites")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.GET("", h.list)
	g.POST("/products/:id", h.toggleProduct)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POSTのたびに付け外しが反転する
func (h *FavoriteHandler) toggleProduct(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ToggleProduct(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
