package handler

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const cartCookieName = "cart_id"

// /cartのHTTP。匿名でも使える（cart_id cookieで識別）。
type CartHandler struct {
	uc           *usecase.CartUsecase
	customerUC   *usecase.CustomerUsecase
	sessionTTL   time.Duration
	cookieSecure bool
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, customerUC *usecase.CustomerUsecase, cfg config.Config) *CartHandler {
	return &CartHandler{
		uc:           uc,
		customerUC:   customerUC,
		sessionTTL:   cfg.CartSessionTTL,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// /cart, /cart/items/{id} を登録。認証は任意。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.OptionalAuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("/items", h.addToCart)
	g.PATCH("/items/:id", h.patchItem)
	g.DELETE("/items/:id", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	identity, err := h.resolveIdentity(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetCart(c.Request().Context(), identity)
	if err != nil {
		return writeError(c, err)
	}

	h.rememberCart(c, identity, out.CartID)
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	identity, err := h.resolveIdentity(c)
	if err != nil {
		return writeError(c, err)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddToCart(c.Request().Context(), identity, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeAddToCartError(c, err)
	}

	h.rememberCart(c, identity, out.CartID)
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	identity, err := h.resolveIdentity(c)
	if err != nil {
		return writeError(c, err)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), identity, itemID, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeAddToCartError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	identity, err := h.resolveIdentity(c)
	if err != nil {
		return writeError(c, err)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.DeleteCartItem(c.Request().Context(), identity, itemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 誰のカートか決める。
// 認証済みならcustomer_id、匿名ならcart_id cookie。
func (h *CartHandler) resolveIdentity(c echo.Context) (usecase.Identity, error) {
	if userID, ok := getUserIDFromContext(c); ok {
		me, err := h.customerUC.GetMe(c.Request().Context(), userID)
		if err != nil {
			//管理者などプロフィール無し。匿名として扱う
			return h.anonymousIdentity(c), nil
		}
		return usecase.Identity{CustomerID: me.ID}, nil
	}

	return h.anonymousIdentity(c), nil
}

func (h *CartHandler) anonymousIdentity(c echo.Context) usecase.Identity {
	cookie, err := c.Cookie(cartCookieName)
	if err != nil || cookie.Value == "" {
		return usecase.Identity{}
	}
	return usecase.Identity{SessionCartID: cookie.Value}
}

// 匿名セッションにはcart_idをcookieで持たせる（TTL更新も兼ねる）。
// 認証済みはcustomer_idから引けるのでcookie不要。
func (h *CartHandler) rememberCart(c echo.Context, identity usecase.Identity, cartID string) {
	if identity.Authenticated() {
		return
	}

	c.SetCookie(&http.Cookie{
		Name:     cartCookieName,
		Value:    cartID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.sessionTTL),
	})
}

// ログイン時のマージ後などに呼ぶ
func clearCartCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     cartCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
