// Package crm pushes website leads into the CRM's Leads module.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/yungbote/blockpage/internal/platform/ctxutil"
	"github.com/yungbote/blockpage/internal/platform/httpx"
	"github.com/yungbote/blockpage/internal/platform/logger"
)

type Client interface {
	CreateLead(ctx context.Context, lead Lead) (string, error)
}

type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
	LeadSource   string
	Timeout      time.Duration
	MaxRetries   int

	// HTTPClient is used for both the token exchange and API calls.
	HTTPClient *http.Client
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.BaseURL) != "" &&
		strings.TrimSpace(c.TokenURL) != "" &&
		strings.TrimSpace(c.ClientID) != "" &&
		strings.TrimSpace(c.RefreshToken) != ""
}

type Lead struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	Phone       string
	Description string
	Source      string
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

// New builds a client whose access tokens come from exchanging the long-lived
// refresh token. Tokens are cached until shortly before they expire.
func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("crm: base url, token url, client id and refresh token required")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if strings.TrimSpace(cfg.LeadSource) == "" {
		cfg.LeadSource = "Website"
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
	ts := oauth2.ReuseTokenSource(nil, oc.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: cfg.RefreshToken}))

	return &client{
		log:        log.With("client", "CRMClient"),
		cfg:        cfg,
		httpClient: hc,
		tokens:     ts,
	}, nil
}

type leadRecord struct {
	FirstName   string `json:"First_Name,omitempty"`
	LastName    string `json:"Last_Name"`
	Email       string `json:"Email"`
	Company     string `json:"Company,omitempty"`
	Phone       string `json:"Phone,omitempty"`
	Description string `json:"Description,omitempty"`
	LeadSource  string `json:"Lead_Source,omitempty"`
}

type insertRequest struct {
	Data    []leadRecord `json:"data"`
	Trigger []string     `json:"trigger,omitempty"`
}

type insertResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
	} `json:"data"`
}

// CreateLead inserts one lead and returns its record id.
func (c *client) CreateLead(ctx context.Context, lead Lead) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", fmt.Errorf("crm client unavailable")
	}
	rec := leadRecord{
		FirstName:   strings.TrimSpace(lead.FirstName),
		LastName:    strings.TrimSpace(lead.LastName),
		Email:       strings.TrimSpace(lead.Email),
		Company:     strings.TrimSpace(lead.Company),
		Phone:       strings.TrimSpace(lead.Phone),
		Description: strings.TrimSpace(lead.Description),
		LeadSource:  strings.TrimSpace(lead.Source),
	}
	if rec.LeadSource == "" {
		rec.LeadSource = c.cfg.LeadSource
	}
	if rec.LastName == "" {
		// Last_Name is mandatory in the Leads module.
		rec.LastName, rec.FirstName = rec.FirstName, ""
	}
	if rec.LastName == "" || rec.Email == "" {
		return "", fmt.Errorf("crm: name and email required")
	}

	raw, err := c.do(ctx, "/crm/v2/Leads", insertRequest{Data: []leadRecord{rec}, Trigger: []string{"workflow"}})
	if err != nil {
		return "", err
	}
	var out insertResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("crm: decode response: %w", err)
	}
	if len(out.Data) == 0 {
		return "", fmt.Errorf("crm: empty response")
	}
	row := out.Data[0]
	if !strings.EqualFold(row.Status, "success") {
		return "", fmt.Errorf("crm: lead rejected: %s %s", row.Code, row.Message)
	}
	c.log.Info("CRM lead created", "lead_id", row.Details.ID)
	return row.Details.ID, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "crm: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if len(msg) > 2000 {
		msg = msg[:2000] + "..."
	}
	return fmt.Sprintf("crm http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) do(ctx context.Context, path string, body any) ([]byte, error) {
	ctx = ctxutil.Default(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	backoff := 500 * time.Millisecond

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, resp, err := c.doOnce(ctx, path, body)
		if err == nil {
			return raw, nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.cfg.MaxRetries {
			return nil, err
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 5*time.Second))
		c.log.Warn("CRM request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.cfg.MaxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return nil, err
		}
		backoff *= 2
	}
	return nil, errors.New("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, path string, body any) ([]byte, *http.Response, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("crm: refresh access token: %w", err)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+tok.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, resp, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, resp, nil
}

// SplitName splits a single "full name" field into first and last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
