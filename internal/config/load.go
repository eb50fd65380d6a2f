package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/blockpage/internal/platform/envutil"
)

const DefaultPlaceholderURL = "https://placehold.co/1600x900/png?text=Image"

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got kind %d", node.Kind)
	}
	s := strings.TrimSpace(node.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if node.Tag == "!!int" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = dd
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		CMS: CMSConfig{
			Timeout:    Duration{Duration: 4 * time.Second},
			MaxRetries: 1,
			Depth:      2,
		},
		Media: MediaConfig{
			PlaceholderURL:     DefaultPlaceholderURL,
			HydrateConcurrency: 4,
		},
		Render: RenderConfig{GalleryLimit: 6},
		Redis: RedisConfig{
			Prefix: "blockpage:",
			TTL:    Duration{Duration: 7 * 24 * time.Hour},
		},
		SendGrid: SendGridConfig{
			Timeout:    Duration{Duration: 10 * time.Second},
			MaxRetries: 2,
		},
		CRM: CRMConfig{
			LeadSource: "Website",
			Timeout:    Duration{Duration: 10 * time.Second},
		},
		Contact: ContactConfig{Subject: "New website enquiry"},
	}
}

// Load reads the YAML file at path (or SITE_CONFIG_PATH, or ./config/config.yaml
// when present) over the defaults, then applies env overrides.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(path)
	if cfgPath == "" {
		cfgPath = strings.TrimSpace(os.Getenv("SITE_CONFIG_PATH"))
	}
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)
	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.HTTP.Addr = envutil.String("SITE_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.CMS.BaseURL = envutil.String("SITE_CMS_BASE_URL", cfg.CMS.BaseURL)
	cfg.CMS.PublicURL = envutil.String("SITE_CMS_PUBLIC_URL", cfg.CMS.PublicURL)
	cfg.CMS.APIKey = envutil.String("SITE_CMS_API_KEY", cfg.CMS.APIKey)
	cfg.CMS.Timeout.Duration = envutil.Duration("SITE_CMS_TIMEOUT", cfg.CMS.Timeout.Duration)
	cfg.CMS.FallbackPath = envutil.String("SITE_FALLBACK_PATH", cfg.CMS.FallbackPath)
	cfg.Redis.Addr = envutil.String("SITE_REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("SITE_REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Render.Debug = envutil.Bool("SITE_RENDER_DEBUG", cfg.Render.Debug)
	if v := envutil.String("SITE_CONTACT_TO", ""); v != "" {
		cfg.Contact.To = splitList(v)
	}

	cfg.SendGrid.APIKey = envutil.String("SENDGRID_API_KEY", cfg.SendGrid.APIKey)
	cfg.SendGrid.BaseURL = envutil.String("SENDGRID_BASE_URL", cfg.SendGrid.BaseURL)
	cfg.SendGrid.FromEmail = envutil.String("SENDGRID_FROM_EMAIL", cfg.SendGrid.FromEmail)
	cfg.SendGrid.FromName = envutil.String("SENDGRID_FROM_NAME", cfg.SendGrid.FromName)

	cfg.CRM.BaseURL = envutil.String("CRM_BASE_URL", cfg.CRM.BaseURL)
	cfg.CRM.TokenURL = envutil.String("CRM_TOKEN_URL", cfg.CRM.TokenURL)
	cfg.CRM.ClientID = envutil.String("CRM_CLIENT_ID", cfg.CRM.ClientID)
	cfg.CRM.ClientSecret = envutil.String("CRM_CLIENT_SECRET", cfg.CRM.ClientSecret)
	cfg.CRM.RefreshToken = envutil.String("CRM_REFRESH_TOKEN", cfg.CRM.RefreshToken)
}

func finalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout.Duration = 15 * time.Second
	}

	cfg.CMS.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.CMS.BaseURL), "/")
	if cfg.CMS.BaseURL == "" {
		return errors.New("cms.base_url is required (or set SITE_CMS_BASE_URL)")
	}
	u, err := url.Parse(cfg.CMS.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("cms.base_url %q must be an absolute URL", cfg.CMS.BaseURL)
	}
	cfg.CMS.PublicURL = strings.TrimRight(strings.TrimSpace(cfg.CMS.PublicURL), "/")
	if cfg.CMS.PublicURL == "" {
		cfg.CMS.PublicURL = u.Scheme + "://" + u.Host
	}
	if cfg.CMS.Timeout.Duration <= 0 {
		cfg.CMS.Timeout.Duration = 4 * time.Second
	}
	if cfg.CMS.MaxRetries < 0 {
		cfg.CMS.MaxRetries = 0
	}
	if cfg.CMS.Depth < 0 {
		cfg.CMS.Depth = 0
	}

	if strings.TrimSpace(cfg.Media.PlaceholderURL) == "" {
		cfg.Media.PlaceholderURL = DefaultPlaceholderURL
	}
	if cfg.Media.HydrateConcurrency <= 0 {
		cfg.Media.HydrateConcurrency = 4
	}
	if cfg.Render.GalleryLimit <= 0 {
		cfg.Render.GalleryLimit = 6
	}

	if cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/"); cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "http://localhost" + cfg.HTTP.Addr
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
