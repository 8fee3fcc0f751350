package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あればDSNをそのまま使う
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	RedisAddr string // 空ならカタログキャッシュ無効

	JWTSecret string // JWT署名シークレット

	GoEnv string // dev/prod

	// 商品価格の上限（これを超える価格は登録できない）
	MaxProductPrice int64

	// 匿名カートのセッション有効期限
	CartSessionTTL time.Duration

	// 空カート掃除の間隔と、掃除対象とみなす最低経過時間
	ReapInterval time.Duration
	ReapMinAge   time.Duration

	// 定期の価格一括加算（0なら無効）
	PriceBumpDelta    int64
	PriceBumpInterval time.Duration
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	maxPrice, err := atoi64Default("MAX_PRODUCT_PRICE", 1_000_000)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxProductPrice = maxPrice

	cartTTL, err := durationDefault("CART_SESSION_TTL", 7*24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.CartSessionTTL = cartTTL

	reapInterval, err := durationDefault("CART_REAP_INTERVAL", 10*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.ReapInterval = reapInterval

	reapMinAge, err := durationDefault("CART_REAP_MIN_AGE", time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.ReapMinAge = reapMinAge

	bumpDelta, err := atoi64Default("PRICE_BUMP_DELTA", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.PriceBumpDelta = bumpDelta

	bumpInterval, err := durationDefault("PRICE_BUMP_INTERVAL", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.PriceBumpInterval = bumpInterval

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MaxProductPrice <= 0 {
		return Config{}, fmt.Errorf("MAX_PRODUCT_PRICE must be positive")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func atoi64Default(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
