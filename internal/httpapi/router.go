// Package httpapi serves the rendered site and the contact endpoint.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/blockpage/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	MaxBodyBytes   int64

	// Debug exposes GET /api/pages/:slug.
	Debug bool

	PageHandler    *PageHandler
	ContactHandler *ContactHandler
	HealthHandler  *HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	service := cfg.ServiceName
	if service == "" {
		service = "blockpage"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(service))
	r.Use(AttachTraceContext())
	r.Use(RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Live)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	api.Use(CORS(cfg.AllowedOrigins), LimitBody(cfg.MaxBodyBytes))
	{
		if cfg.ContactHandler != nil {
			api.POST("/contact", cfg.ContactHandler.Submit)
			api.OPTIONS("/contact", func(c *gin.Context) { c.Status(204) })
		}
		if cfg.Debug && cfg.PageHandler != nil {
			api.GET("/pages/:slug", cfg.PageHandler.Debug)
		}
	}

	// Pages
	if cfg.PageHandler != nil {
		r.GET("/", cfg.PageHandler.Home)
		r.GET("/case-studies", cfg.PageHandler.CaseStudyIndex)
		r.GET("/case-studies/category/:slug", cfg.PageHandler.Category)
		r.GET("/case-studies/:slug", cfg.PageHandler.CaseStudy)
		r.GET("/:slug", cfg.PageHandler.Page)
		r.NoRoute(cfg.PageHandler.NotFound)
	}

	return r
}
