// Package cms reads pages, case studies and globals from the Payload REST API.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/blockpage/internal/platform/ctxutil"
	"github.com/yungbote/blockpage/internal/platform/httpx"
	"github.com/yungbote/blockpage/internal/platform/logger"
)

const (
	CollectionPages      = "pages"
	CollectionCaseStudy  = "case-studies"
	CollectionCategories = "case-study-categories"
	CollectionBlogPosts  = "blog-posts"
	CollectionMedia      = "media"
)

// Client is everything the site reads from the CMS.
type Client interface {
	FindPageBySlug(ctx context.Context, slug string) (*Page, error)
	FindCaseStudyBySlug(ctx context.Context, slug string) (*CaseStudy, error)
	ListPages(ctx context.Context, opts ListOptions) ([]Page, error)
	ListCaseStudies(ctx context.Context, opts ListOptions) ([]CaseStudy, error)
	ListCategories(ctx context.Context) ([]Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListBlogPosts(ctx context.Context, opts ListOptions) ([]BlogPost, error)
	Navigation(ctx context.Context) (*Navigation, error)
	Footer(ctx context.Context) (*Footer, error)
	MediaByID(ctx context.Context, id string) (*Media, error)
}

type ListOptions struct {
	ExcludeID    ID
	CategorySlug string
	Limit        int
	Page         int
	Sort         string
}

type Options struct {
	BaseURL string
	APIKey  string

	// Depth is how many relationship levels Payload inlines.
	Depth int

	// Timeout bounds one logical fetch, retries included.
	Timeout    time.Duration
	MaxRetries int

	HTTPClient *http.Client
	Log        *logger.Logger
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	depth      int
	timeout    time.Duration
	maxRetries int
	httpClient *http.Client
	log        *logger.Logger
	tracer     trace.Tracer
}

var _ Client = (*HTTPClient)(nil)

func New(opts Options) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("cms baseURL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("cms baseURL: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	depth := opts.Depth
	if depth < 0 {
		depth = 0
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(opts.APIKey),
		depth:      depth,
		timeout:    timeout,
		maxRetries: maxRetries,
		httpClient: hc,
		log:        log.With("client", "CMSClient"),
		tracer:     otel.Tracer("github.com/yungbote/blockpage/internal/cms"),
	}, nil
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) FindPageBySlug(ctx context.Context, slug string) (*Page, error) {
	q := NewQuery().Where("slug", "equals", slug).Depth(c.depth).Limit(1)
	var env Envelope[Page]
	if err := c.getJSON(ctx, "/"+CollectionPages, q, &env); err != nil {
		return nil, err
	}
	if len(env.Docs) == 0 {
		return nil, fmt.Errorf("%w: page %q", ErrNotFound, slug)
	}
	return &env.Docs[0], nil
}

func (c *HTTPClient) FindCaseStudyBySlug(ctx context.Context, slug string) (*CaseStudy, error) {
	q := NewQuery().Where("slug", "equals", slug).Depth(c.depth).Limit(1)
	var env Envelope[CaseStudy]
	if err := c.getJSON(ctx, "/"+CollectionCaseStudy, q, &env); err != nil {
		return nil, err
	}
	if len(env.Docs) == 0 {
		return nil, fmt.Errorf("%w: case study %q", ErrNotFound, slug)
	}
	return &env.Docs[0], nil
}

func (c *HTTPClient) ListPages(ctx context.Context, opts ListOptions) ([]Page, error) {
	q := c.listQuery(opts)
	var env Envelope[Page]
	if err := c.getJSON(ctx, "/"+CollectionPages, q, &env); err != nil {
		return nil, err
	}
	out := make([]Page, 0, len(env.Docs))
	for _, p := range env.Docs {
		if p.Published() && p.ID != opts.ExcludeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *HTTPClient) ListCaseStudies(ctx context.Context, opts ListOptions) ([]CaseStudy, error) {
	q := c.listQuery(opts)
	if opts.CategorySlug != "" {
		q.WhereAnd(2, "categories.slug", "equals", opts.CategorySlug)
	}
	var env Envelope[CaseStudy]
	if err := c.getJSON(ctx, "/"+CollectionCaseStudy, q, &env); err != nil {
		return nil, err
	}
	out := make([]CaseStudy, 0, len(env.Docs))
	for _, cs := range env.Docs {
		if cs.Published() && cs.ID != opts.ExcludeID {
			out = append(out, cs)
		}
	}
	return out, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]Category, error) {
	q := NewQuery().Depth(0).Limit(100).Sort("title")
	var env Envelope[Category]
	if err := c.getJSON(ctx, "/"+CollectionCategories, q, &env); err != nil {
		return nil, err
	}
	return env.Docs, nil
}

func (c *HTTPClient) FindCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	q := NewQuery().Where("slug", "equals", slug).Depth(0).Limit(1)
	var env Envelope[Category]
	if err := c.getJSON(ctx, "/"+CollectionCategories, q, &env); err != nil {
		return nil, err
	}
	if len(env.Docs) == 0 {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, slug)
	}
	return &env.Docs[0], nil
}

func (c *HTTPClient) ListBlogPosts(ctx context.Context, opts ListOptions) ([]BlogPost, error) {
	if opts.Sort == "" {
		opts.Sort = "-publishedAt"
	}
	q := c.listQuery(opts)
	var env Envelope[BlogPost]
	if err := c.getJSON(ctx, "/"+CollectionBlogPosts, q, &env); err != nil {
		return nil, err
	}
	out := make([]BlogPost, 0, len(env.Docs))
	for _, p := range env.Docs {
		if p.Published() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *HTTPClient) MediaByID(ctx context.Context, id string) (*Media, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty media id", ErrNotFound)
	}
	var m Media
	if err := c.getJSON(ctx, "/"+CollectionMedia+"/"+url.PathEscape(id), NewQuery().Depth(0), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// listQuery asks only for published documents; results are still filtered
// locally because not every collection stores status the same way.
func (c *HTTPClient) listQuery(opts ListOptions) *Query {
	q := NewQuery().Depth(c.depth).Limit(opts.Limit).Page(opts.Page).Sort(opts.Sort)
	q.WhereAnd(0, "status", "equals", string(StatusPublished))
	if opts.ExcludeID != "" {
		q.WhereAnd(1, "id", "not_equals", string(opts.ExcludeID))
	}
	return q
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, q *Query, out any) error {
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "cms.fetch", trace.WithAttributes(attribute.String("cms.path", path)))
	defer span.End()

	target := c.baseURL + path
	if q != nil {
		if enc := q.Encode(); enc != "" {
			target += "?" + enc
		}
	}

	var lastErr error
	backoff := 200 * time.Millisecond
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		status, err := c.doOnce(ctx, target, out)
		span.SetAttributes(attribute.Int("http.status_code", status), attribute.Int("cms.attempt", attempt+1))
		if err == nil {
			return nil
		}
		lastErr = err
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			break
		}
		c.log.Warn("CMS request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"error", err.Error(),
		)
		if err := httpx.Sleep(ctx, httpx.JitterSleep(backoff)); err != nil {
			lastErr = err
			break
		}
		backoff *= 2
	}

	if !errors.Is(lastErr, ErrNotFound) {
		span.RecordError(lastErr)
		span.SetStatus(codes.Error, lastErr.Error())
	}
	return fmt.Errorf("cms GET %s: %w", path, lastErr)
}

func (c *HTTPClient) doOnce(ctx context.Context, target string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "users API-Key "+c.apiKey)
	}
	if td := ctxutil.GetTraceData(ctx); td != nil && td.RequestID != "" {
		req.Header.Set("X-Request-Id", td.RequestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return resp.StatusCode, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, parseHTTPError(resp.StatusCode, raw)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s: %w", target, err)
	}
	return resp.StatusCode, nil
}
