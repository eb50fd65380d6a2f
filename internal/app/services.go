package app

import (
	"fmt"

	"github.com/yungbote/blockpage/internal/config"
	"github.com/yungbote/blockpage/internal/contact"
	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/render/blocks"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/site"
	"github.com/yungbote/blockpage/internal/site/layout"
	"github.com/yungbote/blockpage/internal/staticgen"
)

type Services struct {
	Media     *media.Resolver
	Renderer  *blocks.Renderer
	Assembler *site.Assembler
	Layout    *layout.Renderer
	Contact   *contact.Service
	Static    *staticgen.Builder
}

func wireServices(log *logger.Logger, cfg *config.Config, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	// Rendering stays quiet unless render.debug is on.
	renderLog := logger.Nop()
	if cfg.Render.Debug {
		renderLog = log.With("component", "render")
	}

	resolver := media.NewResolver(cfg.CMS.PublicURL, cfg.Media.PlaceholderURL, renderLog)
	renderer := blocks.NewRenderer(resolver, renderLog)

	assembler, err := site.New(site.Options{
		CMS:                clients.CMS,
		Renderer:           renderer,
		Media:              resolver,
		Fallback:           clients.Fallback,
		Snapshot:           clients.Snapshot,
		Log:                log,
		Timeout:            cfg.CMS.Timeout.Duration,
		GalleryLimit:       cfg.Render.GalleryLimit,
		HydrateConcurrency: cfg.Media.HydrateConcurrency,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init assembler: %w", err)
	}

	shell, err := layout.New(layout.SiteInfo{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL})
	if err != nil {
		return Services{}, fmt.Errorf("init layout: %w", err)
	}

	contactSvc := contact.New(contact.Options{
		Mailer:  clients.Mailer,
		CRM:     clients.CRM,
		To:      cfg.Contact.To,
		Subject: cfg.Contact.Subject,
		Log:     log,
	})

	static, err := staticgen.New(staticgen.Options{
		CMS:       clients.CMS,
		Assembler: assembler,
		Layout:    shell,
		Log:       log,
		BaseURL:   cfg.Site.BaseURL,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init static builder: %w", err)
	}

	return Services{
		Media:     resolver,
		Renderer:  renderer,
		Assembler: assembler,
		Layout:    shell,
		Contact:   contactSvc,
		Static:    static,
	}, nil
}
