package v1

import (
	"net/http"
	"time"

	"lunarai-web/config"
	"lunarai-web/internal/delivery/http/middleware"
	"lunarai-web/internal/delivery/http/response"
	"lunarai-web/internal/delivery/http/web"
	"lunarai-web/internal/domain"
	"lunarai-web/internal/usecase"
	"lunarai-web/pkg/apperror"
	"lunarai-web/pkg/eventlog"
	"lunarai-web/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	SiteUC    domain.SiteUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
	// Optional; nil rate-limits in memory
	Redis       *goredis.Client
	Events      *eventlog.Logger
	HTTPMetrics *metrics.HTTPMetrics
	// Source for /metrics; nil uses the default registry
	Gatherer prometheus.Gatherer
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	origins := append([]string{cfg.FrontendURL}, cfg.AllowedOrigins...)
	r.Use(middleware.CORSMiddleware(origins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(deps.HTTPMetrics))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandlerWithPages(web.ErrorPage(deps.SiteUC)))

	globalLimit := middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, window)
	globalLimit.Redis = deps.Redis
	globalLimit.Events = deps.Events
	r.Use(middleware.RateLimitMiddleware(globalLimit))

	r.Use(middleware.CSRFMiddleware(middleware.CSRFConfig{
		Secure:      cfg.IsProduction(),
		ExemptPaths: []string{"/v1/contact", "/v1/contact/validate"},
		Events:      deps.Events,
	}))

	contactLimit := middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window)
	contactLimit.Redis = deps.Redis
	contactLimit.Events = deps.Events
	limitContact := middleware.RateLimitMiddleware(contactLimit)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	NewContactHandler(v1, deps.ContactUC, limitContact)
	NewSiteHandler(v1, deps.SiteUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Server-rendered pages
	web.NewHandler(r, deps.SiteUC, deps.ContactUC, limitContact)

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Not found"))
	})

	return r
}
