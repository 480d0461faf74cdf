package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recommend-backend/internal/recommendations"
	"recommend-backend/internal/services/health"
	"recommend-backend/internal/shared/config"
	"recommend-backend/internal/shared/metrics"
	"recommend-backend/internal/shared/server/middleware"
	"recommend-backend/internal/shared/server/respond"
)

const (
	serviceName    = "recommend-backend"
	serviceVersion = "1.0.0"

	// The default group covers the cheap read endpoints.
	defaultRateMultiplier = 4
)

// RouterDeps holds the handlers mounted on the router.
type RouterDeps struct {
	Config           config.Config
	RecommendHandler *recommendations.Handler
	Health           *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Every route is served both at the root and under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Metrics(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"RECOMMEND": {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
				"DEFAULT":   {Rate: cfg.RateLimitRPS * defaultRateMultiplier, Burst: cfg.RateLimitBurst * defaultRateMultiplier},
			},
			GroupFor: middleware.RecommendGroupFor,
		}),
	)

	r.GET("/metrics", metrics.Handler())
	for _, rg := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api/v1")} {
		registerRoutes(rg, deps)
	}
	return r
}

func registerRoutes(rg *gin.RouterGroup, deps RouterDeps) {
	rg.GET("/", describe)
	rg.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.RecommendHandler != nil {
		deps.RecommendHandler.RegisterRoutes(rg)
	}
}

func describe(c *gin.Context) {
	respond.OK(c, gin.H{
		"name":    serviceName,
		"version": serviceVersion,
		"endpoints": gin.H{
			"POST /recommend": "Get constraint-aware, explainable recommendations",
			"GET /presets":    "List scoring weight presets",
			"GET /domains":    "List available catalog domains",
			"GET /health":     "Liveness check",
			"GET /metrics":    "Prometheus metrics",
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
