package main

import (
	"context"
	"log"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/job"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// refresh cookieの有効期限（usecase側のtoken TTLと揃えている）
const refreshCookieTTL = 30 * 24 * time.Hour

func main() {
	//.envは無くてもいい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Customer{},
		&model.CustomerImage{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.InventoryAdjustment{},
		&model.Review{},
		&model.FavoriteItem{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//redis（REDIS_ADDR未設定ならキャッシュ無効）
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	productCache := cache.NewProductCache(redisClient)

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, customerRepo, rtRepo, authValidator)
	customerUC := usecase.NewCustomerUsecase(customerRepo, userRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, inventoryRepo, reviewRepo, productCache, cfg)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, customerRepo, productCache)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	mergeUC := usecase.NewCartMergeUsecase(txManager, customerRepo)
	orderUC := usecase.NewOrderUsecase(txManager, customerRepo, orderRepo, orderItemRepo)
	cleanupUC := usecase.NewCleanupUsecase(cartRepo, productRepo, rtRepo, cfg.ReapMinAge)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC, mergeUC, refreshCookieTTL),
		Product:      handler.NewProductHandler(productUC, reviewUC),
		Review:       handler.NewReviewHandler(reviewUC),
		Favorite:     handler.NewFavoriteHandler(favoriteUC),
		Cart:         handler.NewCartHandler(cartUC, customerUC, cfg),
		Order:        handler.NewOrderHandler(orderUC),
		Customer:     handler.NewCustomerHandler(customerUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminOrder:   handler.NewAdminOrderHandler(orderUC),
		AdminUser:    handler.NewAdminUserHandler(authUC),
		AdminJob:     handler.NewAdminJobHandler(cleanupUC),
	}

	//定期ジョブ
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	job.NewScheduler(cleanupUC, cfg).Start(ctx)

	//Server起動
	e := server.New(cfg, handlers, userRepo)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
