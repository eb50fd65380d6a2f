// Package app wires configuration, clients and handlers into a runnable site.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blockpage/internal/config"
	"github.com/yungbote/blockpage/internal/httpapi"
	"github.com/yungbote/blockpage/internal/observability"
	"github.com/yungbote/blockpage/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Config   *config.Config
	Clients  Clients
	Services Services
	Router   *gin.Engine

	server       *http.Server
	otelShutdown func(context.Context) error
}

// New loads configuration from configPath (empty uses the default lookup)
// and builds every dependency. Nothing listens until Run.
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "blockpage",
		Environment: cfg.Env,
	})

	clientset, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset, err := wireServices(log, cfg, clientset)
	if err != nil {
		_ = clientset.Close()
		log.Sync()
		return nil, err
	}

	router := wireRouter(log, cfg, clientset, serviceset)

	return &App{
		Log:          log,
		Config:       cfg,
		Clients:      clientset,
		Services:     serviceset,
		Router:       router,
		server:       httpapi.NewServer(cfg.HTTP, router),
		otelShutdown: shutdownOtel,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return errors.New("app not initialized")
	}
	a.Log.Info("Listening", "addr", a.server.Addr, "cms", a.Config.CMS.BaseURL)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		a.Log.Info("Shutting down", "timeout", a.Config.HTTP.ShutdownTimeout.Duration.String())
		_ = a.server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if err := a.Clients.Close(); err != nil {
		a.Log.Warn("Closing clients failed", "error", err)
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Tracer shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
