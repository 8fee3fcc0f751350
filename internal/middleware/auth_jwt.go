package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
)

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authenticate(c, cfg); err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}

// カート系ルート用。
// tokenがあれば検証してcontextに積む。無ければ匿名のまま通す。
// 不正なtokenは匿名扱いにせず401で落とす。
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			if err := authenticate(c, cfg); err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, cfg config.Config) error {
	//Authorizationヘッダを取得
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return errors.New("missing header")
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errors.New("not bearer")
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return errors.New("empty token")
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return errors.New("invalid token")
	}

	//claimsを取り出す
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid claims")
	}

	//user_idを取り出す
	userID, err := parseUserID(claims["sub"])
	if err != nil || userID <= 0 {
		return errors.New("invalid sub")
	}

	//roleを取り出す（USER/ADMIN）
	role, err := parseString(claims["role"])
	if err != nil || role == "" {
		return errors.New("invalid role")
	}

	//token_versionを取り出す
	tv, err := parseInt(claims["tv"])
	if err != nil || tv < 0 {
		return errors.New("invalid tv")
	}

	//contextへ保存
	c.Set(CtxUserIDKey, userID)
	c.Set(CtxUserRoleKey, role)
	c.Set(CtxTokenVersionKey, tv)

	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// user_idをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

func parseInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return 0, err
		}
		return int(i64), nil
	default:
		return 0, errors.New("invalid int")
	}
}
