package server

import (
	"net/http"

	"github.com/fekuna/omnipos-inventory-service/internal/middleware"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RouteRegistrar is implemented by every HTTP handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type RouterOptions struct {
	JWTSecret string
	// Requests per second per client IP. Zero disables limiting.
	RateLimit int
	RateBurst int
}

// NewRouter mounts the handlers under /api/v1 behind bearer authentication.
// /health stays public.
func NewRouter(log logger.ZapLogger, opts RouterOptions, handlers ...RouteRegistrar) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	if opts.RateLimit > 0 {
		api.Use(middleware.NewRateLimiter(rate.Limit(opts.RateLimit), opts.RateBurst).Middleware())
	}
	api.Use(middleware.JWTAuth(opts.JWTSecret))
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return r
}
