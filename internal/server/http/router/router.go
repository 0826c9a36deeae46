package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/homekitchen/internal/config"
	"github.com/polkiloo/homekitchen/internal/server/http/dto"
	"github.com/polkiloo/homekitchen/internal/server/http/handlers"
	"github.com/polkiloo/homekitchen/internal/server/http/middleware"
)

const msgRouteNotFound = "接口不存在"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.KitchenFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	detail := cfg.Development()

	engine.Use(middleware.AssignRequestID())
	engine.Use(middleware.Recovery(logger, detail))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	engine.Use(middleware.LimitBody(cfg.MaxBodyBytes))
	engine.Use(middleware.DecompressRequest(cfg.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Failure(msgRouteNotFound))
	})

	resp := handlers.NewResponder(logger, detail)
	menuHandler := handlers.NewMenuHandler(facade, resp)
	orderHandler := handlers.NewOrderHandler(facade, resp)
	statsHandler := handlers.NewStatsHandler(facade, resp)
	systemHandler := handlers.NewSystemHandler(facade, resp)

	api := engine.Group("/api")
	api.GET("/menu", menuHandler.List)
	api.POST("/order", orderHandler.Submit)
	api.GET("/orders", orderHandler.List)
	api.PUT("/order/:id", orderHandler.UpdateStatus)
	api.GET("/stats", statsHandler.Stats)
	api.POST("/backup", systemHandler.Backup)
	api.GET("/health", systemHandler.Health)

	return engine
}
