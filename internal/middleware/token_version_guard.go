package middleware

import (
	"net/http"

	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTのtvとDBのtoken_versionが一致するか確認。
// 不一致なら強制ログアウト済みのtokenなので401。
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_idを取得する
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//AuthJWTが入れたtoken_version(tv)を取得する
			rawTV := c.Get(CtxTokenVersionKey)
			tv, ok := rawTV.(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if user.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}
