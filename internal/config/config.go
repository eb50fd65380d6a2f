package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`

	// AllowedOrigins feeds CORS for the contact endpoint. Empty allows local
	// development origins only.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

type CMSConfig struct {
	// BaseURL is the Payload REST root, e.g. https://cms.example.com/api.
	BaseURL string `yaml:"base_url"`

	// PublicURL is the origin that root-relative media URLs are resolved against.
	// Defaults to the scheme+host of BaseURL.
	PublicURL string `yaml:"public_url,omitempty"`

	APIKey string `yaml:"api_key,omitempty"`

	// Timeout bounds every individual CMS fetch including retries.
	Timeout    Duration `yaml:"timeout,omitempty"`
	MaxRetries int      `yaml:"max_retries,omitempty"`
	Depth      int      `yaml:"depth,omitempty"`

	// FallbackPath overlays the embedded nav/footer/category defaults.
	FallbackPath string `yaml:"fallback_path,omitempty"`
}

type MediaConfig struct {
	PlaceholderURL string `yaml:"placeholder_url,omitempty"`
	// HydrateConcurrency caps parallel fetch-by-ID calls per page.
	HydrateConcurrency int `yaml:"hydrate_concurrency,omitempty"`
}

type RenderConfig struct {
	Debug        bool `yaml:"debug"`
	GalleryLimit int  `yaml:"gallery_limit,omitempty"`
}

type RedisConfig struct {
	Addr     string   `yaml:"addr,omitempty"`
	Password string   `yaml:"password,omitempty"`
	DB       int      `yaml:"db,omitempty"`
	Prefix   string   `yaml:"prefix,omitempty"`
	TTL      Duration `yaml:"ttl,omitempty"`
}

type SendGridConfig struct {
	APIKey     string   `yaml:"api_key,omitempty"`
	BaseURL    string   `yaml:"base_url,omitempty"`
	FromEmail  string   `yaml:"from_email,omitempty"`
	FromName   string   `yaml:"from_name,omitempty"`
	Timeout    Duration `yaml:"timeout,omitempty"`
	MaxRetries int      `yaml:"max_retries,omitempty"`
}

type CRMConfig struct {
	BaseURL      string   `yaml:"base_url,omitempty"`
	TokenURL     string   `yaml:"token_url,omitempty"`
	ClientID     string   `yaml:"client_id,omitempty"`
	ClientSecret string   `yaml:"client_secret,omitempty"`
	RefreshToken string   `yaml:"refresh_token,omitempty"`
	LeadSource   string   `yaml:"lead_source,omitempty"`
	Timeout      Duration `yaml:"timeout,omitempty"`
}

type ContactConfig struct {
	To      []string `yaml:"to,omitempty"`
	Subject string   `yaml:"subject,omitempty"`
}

type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	CMS      CMSConfig      `yaml:"cms"`
	Media    MediaConfig    `yaml:"media"`
	Render   RenderConfig   `yaml:"render"`
	Redis    RedisConfig    `yaml:"redis"`
	SendGrid SendGridConfig `yaml:"sendgrid"`
	CRM      CRMConfig      `yaml:"crm"`
	Contact  ContactConfig  `yaml:"contact"`
	Site     SiteConfig     `yaml:"site"`
}
