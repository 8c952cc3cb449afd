package api

import (
	"woyofal/pkg/ginzap"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает gin-движок со всеми маршрутами API.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.RequestID(), ginzap.Logger(logger), ginzap.Recovery(logger, h.Panic))

	router.GET("/", h.Index)
	router.GET("/health", h.Health)

	woyofal := router.Group("/api/woyofal")
	woyofal.GET("/compteur/:numero", h.VerifyMeter)
	woyofal.GET("/compteurs", h.ListMeters)

	maxitAPI := router.Group("/api/maxit")
	maxitAPI.GET("/health", h.MaxitHealth)
	maxitAPI.GET("/compteur/:numero", h.MaxitMeter)
	maxitAPI.POST("/sync/:numero", h.SyncMeter)
	maxitAPI.POST("/search", h.SearchMeters)

	router.NoRoute(h.NotFound)
	return router
}
