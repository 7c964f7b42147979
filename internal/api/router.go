package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig tunes the router middleware.
type RouterConfig struct {
	RateLimitRPS     int
	RateLimitBurst   int
	RateLimitEnabled bool
}

// NewRouter wires all routes.
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS())
	if cfg.RateLimitEnabled {
		router.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/apps", h.ListApps)

	router.POST("/verify", h.VerifyPackage)
	router.POST("/verify/all", h.VerifyAll)

	router.GET("/flagged", h.ListFlagged)
	router.PATCH("/flagged", h.ClearFlag)

	router.POST("/script", h.GenerateScript)

	return router
}
