package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/cms/fallback"
	"github.com/yungbote/blockpage/internal/cms/snapshot"
	"github.com/yungbote/blockpage/internal/config"
	"github.com/yungbote/blockpage/internal/crm"
	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/platform/sendgrid"
)

type Clients struct {
	CMS      *cms.HTTPClient
	Snapshot snapshot.Store
	Fallback *fallback.Set
	// Mailer and CRM stay nil when unconfigured.
	Mailer sendgrid.Client
	CRM    crm.Client
}

func (c Clients) Close() error {
	if c.Snapshot == nil {
		return nil
	}
	return c.Snapshot.Close()
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *config.Config) (Clients, error) {
	log.Info("Wiring clients...")

	// CMS
	cmsClient, err := cms.New(cms.Options{
		BaseURL:    cfg.CMS.BaseURL,
		APIKey:     cfg.CMS.APIKey,
		Depth:      cfg.CMS.Depth,
		Timeout:    cfg.CMS.Timeout.Duration,
		MaxRetries: cfg.CMS.MaxRetries,
		Log:        log,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init cms client: %w", err)
	}

	// Static fallbacks
	fb := fallback.Default()
	if p := strings.TrimSpace(cfg.CMS.FallbackPath); p != "" {
		if fb, err = fallback.Load(p); err != nil {
			return Clients{}, fmt.Errorf("load fallback %s: %w", p, err)
		}
	}

	// Redis
	var store snapshot.Store
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		store, err = snapshot.NewRedis(ctx, log, snapshot.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			TTL:      cfg.Redis.TTL.Duration,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis snapshot: %w", err)
		}
	} else {
		log.Info("Redis not configured; keeping globals snapshot in memory")
		store = snapshot.NewMemory()
	}

	out := Clients{CMS: cmsClient, Snapshot: store, Fallback: fb}

	// SendGrid
	sgCfg := sendgrid.Config{
		APIKey:           cfg.SendGrid.APIKey,
		BaseURL:          cfg.SendGrid.BaseURL,
		DefaultFromEmail: cfg.SendGrid.FromEmail,
		DefaultFromName:  cfg.SendGrid.FromName,
		Timeout:          cfg.SendGrid.Timeout.Duration,
		MaxRetries:       cfg.SendGrid.MaxRetries,
	}
	if sgCfg.Enabled() {
		mailer, err := sendgrid.New(log, sgCfg)
		if err != nil {
			_ = store.Close()
			return Clients{}, fmt.Errorf("init sendgrid: %w", err)
		}
		out.Mailer = mailer
	} else {
		log.Info("SendGrid not configured; contact emails disabled")
	}

	// CRM
	crmCfg := crm.Config{
		BaseURL:      cfg.CRM.BaseURL,
		TokenURL:     cfg.CRM.TokenURL,
		ClientID:     cfg.CRM.ClientID,
		ClientSecret: cfg.CRM.ClientSecret,
		RefreshToken: cfg.CRM.RefreshToken,
		LeadSource:   cfg.CRM.LeadSource,
		Timeout:      cfg.CRM.Timeout.Duration,
	}
	if crmCfg.Enabled() {
		leads, err := crm.New(log, crmCfg)
		if err != nil {
			_ = store.Close()
			return Clients{}, fmt.Errorf("init crm: %w", err)
		}
		out.CRM = leads
	} else {
		log.Info("CRM not configured; leads disabled")
	}

	return out, nil
}
