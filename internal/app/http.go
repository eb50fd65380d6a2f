package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blockpage/internal/cms/snapshot"
	"github.com/yungbote/blockpage/internal/config"
	"github.com/yungbote/blockpage/internal/httpapi"
	"github.com/yungbote/blockpage/internal/platform/logger"
)

type Handlers struct {
	Page    *httpapi.PageHandler
	Contact *httpapi.ContactHandler
	Health  *httpapi.HealthHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	ready := func(ctx context.Context) error {
		// Only the snapshot store gates readiness; pages degrade without the CMS.
		_, err := clients.Snapshot.Get(ctx, snapshot.KeyNavigation, new(map[string]any))
		return err
	}
	return Handlers{
		Page:    httpapi.NewPageHandler(services.Assembler, services.Layout, clients.Fallback, log),
		Contact: httpapi.NewContactHandler(services.Contact),
		Health:  httpapi.NewHealthHandler(ready),
	}
}

func wireRouter(log *logger.Logger, cfg *config.Config, clients Clients, services Services) *gin.Engine {
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := wireHandlers(log, clients, services)
	return httpapi.NewRouter(httpapi.RouterConfig{
		Log:            log,
		ServiceName:    "blockpage",
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxBodyBytes:   cfg.HTTP.MaxRequestBytes,
		Debug:          cfg.Render.Debug,
		PageHandler:    handlers.Page,
		ContactHandler: handlers.Contact,
		HealthHandler:  handlers.Health,
	})
}
