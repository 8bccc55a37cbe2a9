package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"jewelry-store/internal/api"
	"jewelry-store/internal/auth"
	"jewelry-store/internal/config"
	"jewelry-store/internal/consumer"
	"jewelry-store/internal/repository"
	"jewelry-store/internal/service"
	"jewelry-store/migrations"
)

func connectDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB")
				return db, nil
			}
		}
		log.Printf("Retry %d: failed to connect to DB: %v", i+1, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB after retries: %v", err)
}

func main() {
	db, err := connectDB(config.DSN())
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	ctx := context.Background()
	if err := migrations.SeedCatalog(ctx, db); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_PASS")
	if adminUser != "" && adminPass != "" {
		if err := migrations.SeedAdminUser(ctx, db, adminUser, adminPass); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.RedisAddr(),
	})

	kafkaWriter := config.NewKafkaWriter(config.ProductTopic)

	signer := auth.NewSigner(config.JWTSecret(), 24*time.Hour)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	userService := service.NewUserService(userRepo, signer, rdb)
	productService := service.NewProductService(productRepo, rdb, kafkaWriter)
	catalogService := service.NewCatalogService(catalogRepo)
	quoteService := service.NewQuoteService(catalogRepo, rdb)

	userHandler := api.NewUserHandler(userService)
	productHandler := api.NewProductHandler(productService, quoteService)
	catalogHandler := api.NewCatalogHandler(catalogService)
	quoteHandler := api.NewQuoteHandler(quoteService)

	// Keep the product cache fresh as mutations land.
	cacheConsumer := consumer.NewConsumer(productService)
	go cacheConsumer.Run(ctx)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))
	e.Use(middleware.ContextTimeout(10 * time.Second))

	authed := api.Auth(signer)

	// Public routes
	e.POST("/api/login", userHandler.Login)
	e.POST("/api/register", userHandler.Register)
	e.GET("/api/products", productHandler.List)
	e.GET("/api/metals", catalogHandler.ListMetals)
	e.GET("/api/gems", catalogHandler.ListGems)
	e.GET("/api/links", catalogHandler.ListLinks)
	e.GET("/api/rings", catalogHandler.ListRings)
	e.POST("/api/necklaces", catalogHandler.CreateNecklace)
	e.POST("/api/rings", catalogHandler.CreateRing)
	e.POST("/api/quotes", quoteHandler.Quote)

	// Any authenticated user
	e.PUT("/api/users", userHandler.Update, authed)

	// Admin only
	e.GET("/api/users", userHandler.List, authed, api.RequireAdmin)
	e.DELETE("/api/users/:id", userHandler.Delete, authed, api.RequireAdmin)
	e.POST("/api/products", productHandler.Create, authed, api.RequireAdmin)
	e.PUT("/api/products", productHandler.Update, authed, api.RequireAdmin)
	e.DELETE("/api/products", productHandler.Delete, authed, api.RequireAdmin)
	e.POST("/api/products/custom", productHandler.CreateCustom, authed, api.RequireAdmin)

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "jewelry-store",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Start server
	e.Logger.Fatal(e.Start(config.ListenAddr()))
}
