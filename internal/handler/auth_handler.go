package handler

import (
	"net/http"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	refreshCookieName = "refresh"
	csrfCookieName    = "csrf_token"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	mergeUC      *usecase.CartMergeUsecase
	refreshTTL   time.Duration
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, mergeUC *usecase.CartMergeUsecase, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		mergeUC:      mergeUC,
		refreshTTL:   refreshTTL,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/refresh", h.refresh)
	e.POST("/auth/logout", h.logout)

	me := e.Group("/auth/me")
	me.Use(middleware.AuthJWT(cfg))
	me.Use(middleware.TokenVersionGuard(userRepo))
	me.GET("", h.me)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userAgent := c.Request().Header.Get("User-Agent")

	out, err := h.uc.Login(c.Request().Context(), req, userAgent)
	if err != nil {
		return writeError(c, err)
	}

	//セッションに匿名カートがあればこの顧客のカートへ取り込む。
	//マージ失敗でログイン自体は失敗させない
	if cookie, err := c.Cookie(cartCookieName); err == nil && cookie.Value != "" {
		_ = h.mergeUC.MergeOnLogin(c.Request().Context(), out.Body.User.ID, cookie.Value)
		clearCartCookie(c, h.cookieSecure)
	}

	h.setRefreshCookie(c, out.RefreshTokenPlain)
	h.setCsrfCookie(c, out.CsrfTokenPlain)

	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	userAgent := c.Request().Header.Get("User-Agent")

	out, err := h.uc.Refresh(c.Request().Context(), cookie.Value, userAgent)
	if err != nil {
		return writeError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshTokenPlain)
	h.setCsrfCookie(c, out.CsrfTokenPlain)

	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Logout(c.Request().Context(), cookie.Value)
	if err != nil {
		return writeError(c, err)
	}

	//cookieも消す
	h.clearAuthCookies(c)

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// refreshtokenをCookieにセット。
func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    plainRefresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

// csrftokenをCookieにセット（JSから読めるようにHttpOnlyなし）
func (h *AuthHandler) setCsrfCookie(c echo.Context, csrfToken string) {
	c.SetCookie(&http.Cookie{
		Name:     csrfCookieName,
		Value:    csrfToken,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	for _, name := range []string{refreshCookieName, csrfCookieName} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: name == refreshCookieName,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}
