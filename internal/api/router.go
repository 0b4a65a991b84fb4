package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mercadolocal/catalog-system/docs"
	"github.com/mercadolocal/catalog-system/internal/api/handler"
	"github.com/mercadolocal/catalog-system/internal/api/middleware"
	"github.com/mercadolocal/catalog-system/internal/core/service"
	mongodb "github.com/mercadolocal/catalog-system/internal/infrastructure/db/mongo"
	redisdb "github.com/mercadolocal/catalog-system/internal/infrastructure/db/redis"
	"github.com/mercadolocal/catalog-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit service.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cache := redisdb.NewListingCache(rdb)

	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codec, log)
	userService := service.NewUserService(userRepo, log)
	catalogService := service.NewCatalogService(productRepo, userRepo, cache, audit, log)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(catalogService, userService)

	// Every request passes through the authenticator; it never aborts, it
	// only attaches a principal when the token checks out. The deny decision
	// belongs to the per-route policy guards.
	e.Use(middleware.Authenticate(codec, userRepo, cfg.PublicPaths, log))

	// --- Identity routes ---
	users := e.Group("/api/users")
	users.POST("/login", authHandler.Login)
	users.GET("/me", authHandler.Me, middleware.Require(middleware.OpReadOwnProfile))
	users.POST("", userHandler.Create, middleware.Require(middleware.OpManageIdentities))
	users.GET("", userHandler.List, middleware.Require(middleware.OpManageIdentities))
	users.GET("/active", userHandler.ListActive, middleware.Require(middleware.OpManageIdentities))
	users.GET("/role/:role", userHandler.ListByRole, middleware.Require(middleware.OpManageIdentities))
	users.GET("/:id", userHandler.Get, middleware.Require(middleware.OpManageIdentities))
	users.PUT("/:id", userHandler.Update, middleware.Require(middleware.OpManageIdentities))
	users.DELETE("/:id", userHandler.Delete, middleware.Require(middleware.OpManageIdentities))

	// --- Catalog routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.GET("/available", productHandler.ListAvailable)
	products.GET("/seller/:sellerId", productHandler.ListBySeller)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, middleware.Require(middleware.OpWriteProduct))
	products.PUT("/:id", productHandler.Update, middleware.Require(middleware.OpWriteProduct))
	products.POST("/:id/stock/reduce", productHandler.ReduceStock, middleware.Require(middleware.OpWriteProduct))
	products.POST("/:id/stock/add", productHandler.AddStock, middleware.Require(middleware.OpWriteProduct))
	products.DELETE("/:id", productHandler.Delete, middleware.Require(middleware.OpDeleteProduct))

	// --- Health probes, metrics, API docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
