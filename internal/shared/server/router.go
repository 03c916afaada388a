package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/history"
	"placement-backend/internal/resume"
	"placement-backend/internal/services/health"
	"placement-backend/internal/shared/config"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

const quotaAnalyze = "ANALYZE"

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config         config.Config
	Verifier       middleware.TokenVerifier
	Health         *health.Service
	HistoryHandler *history.Handler
	ResumeHandler  *resume.Handler
	Limiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	api.GET("/metrics", metrics.Handler())

	secured := api.Group("")
	secured.Use(
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(rateLimitOptions(deps.Config, deps.Limiter)),
	)
	registerMeRoutes(secured)
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(secured)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(secured)
	}

	return r
}

// rateLimitOptions gives analysis submissions a fifth of the default budget.
func rateLimitOptions(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitOptions {
	analyzeBurst := max(cfg.RateLimitBurst/5, 1)
	return middleware.RateLimitOptions{
		Limiter: limiter,
		Classify: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && strings.HasPrefix(c.FullPath(), "/api/v1/analyses") {
				return quotaAnalyze
			}
			return middleware.QuotaDefault
		},
		Quotas: map[string]middleware.Quota{
			middleware.QuotaDefault: {PerSecond: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			quotaAnalyze:            {PerSecond: cfg.RateLimitRPS / 5, Burst: analyzeBurst},
		},
	}
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
