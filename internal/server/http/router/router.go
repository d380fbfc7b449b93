package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flowershop/internal/config"
	"github.com/polkiloo/flowershop/internal/metrics"
	"github.com/polkiloo/flowershop/internal/server/http/handlers"
	"github.com/polkiloo/flowershop/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(m.Middleware())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	authHandler := handlers.NewAuthHandler(facade, logger)
	catalogHandler := handlers.NewCatalogHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	commentHandler := handlers.NewCommentHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)

	engine.GET("/metrics", gin.WrapH(m.Handler()))

	api := engine.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", loginLimiter.Middleware(), authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/flowers", catalogHandler.List)
	api.GET("/comments", commentHandler.List)
	api.GET("/health", healthHandler.Check)

	authorized := api.Group("")
	authorized.Use(middleware.TokenRequired(facade, logger))
	authorized.GET("/orders", orderHandler.List)
	authorized.POST("/orders", orderHandler.Create)
	authorized.PUT("/orders/:id", orderHandler.Update)
	authorized.DELETE("/orders/:id", orderHandler.Delete)
	authorized.POST("/comments", commentHandler.Create)

	return engine
}
