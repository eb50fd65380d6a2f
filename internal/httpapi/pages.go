package httpapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blockpage/internal/cms/fallback"
	"github.com/yungbote/blockpage/internal/platform/apierr"
	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/site"
	"github.com/yungbote/blockpage/internal/site/layout"
)

// Assembler is the part of site.Assembler the page routes use.
type Assembler interface {
	AssemblePage(ctx context.Context, slug string) (*site.Page, error)
	AssembleCaseStudy(ctx context.Context, slug string) (*site.Page, error)
	AssembleCaseStudyIndex(ctx context.Context) (*site.Listing, error)
	AssembleCategory(ctx context.Context, slug string) (*site.Listing, error)
}

type PageHandler struct {
	assembler Assembler
	layout    *layout.Renderer
	fallback  *fallback.Set
	log       *logger.Logger
}

func NewPageHandler(a Assembler, l *layout.Renderer, fb *fallback.Set, log *logger.Logger) *PageHandler {
	if fb == nil {
		fb = fallback.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PageHandler{assembler: a, layout: l, fallback: fb, log: log.With("handler", "PageHandler")}
}

const pageCacheControl = "public, max-age=60, stale-while-revalidate=300"

func (h *PageHandler) Home(c *gin.Context) {
	h.page(c, site.HomeSlug)
}

func (h *PageHandler) Page(c *gin.Context) {
	h.page(c, c.Param("slug"))
}

func (h *PageHandler) page(c *gin.Context, slug string) {
	p, err := h.assembler.AssemblePage(c.Request.Context(), slug)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, func(buf *bytes.Buffer) error { return h.layout.RenderPage(buf, p) })
}

func (h *PageHandler) CaseStudy(c *gin.Context) {
	p, err := h.assembler.AssembleCaseStudy(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, func(buf *bytes.Buffer) error { return h.layout.RenderPage(buf, p) })
}

func (h *PageHandler) CaseStudyIndex(c *gin.Context) {
	l, err := h.assembler.AssembleCaseStudyIndex(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, func(buf *bytes.Buffer) error { return h.layout.RenderListing(buf, l) })
}

func (h *PageHandler) Category(c *gin.Context) {
	l, err := h.assembler.AssembleCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, func(buf *bytes.Buffer) error { return h.layout.RenderListing(buf, l) })
}

// NotFound renders the HTML 404 page for unmatched routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	h.errorPage(c, http.StatusNotFound, "")
}

type debugBlock struct {
	Key      string `json:"key"`
	Kind     string `json:"kind"`
	RawType  string `json:"rawType"`
	NavTheme string `json:"navTheme"`
}

type debugPage struct {
	ID       string       `json:"id"`
	Slug     string       `json:"slug"`
	Title    string       `json:"title"`
	Kind     string       `json:"kind"`
	NavTheme string       `json:"navTheme"`
	Notice   string       `json:"notice,omitempty"`
	Degraded []string     `json:"degraded,omitempty"`
	Blocks   []debugBlock `json:"blocks"`
	Gallery  int          `json:"gallery"`
}

// Debug returns the block kinds and nav hints of an assembled page.
// ?type=case-study switches the collection.
func (h *PageHandler) Debug(c *gin.Context) {
	var (
		p   *site.Page
		err error
	)
	if c.Query("type") == string(site.KindCaseStudy) {
		p, err = h.assembler.AssembleCaseStudy(c.Request.Context(), c.Param("slug"))
	} else {
		p, err = h.assembler.AssemblePage(c.Request.Context(), c.Param("slug"))
	}
	if err != nil {
		RespondAPIError(c, classify(err))
		return
	}
	out := debugPage{
		ID:       string(p.ID),
		Slug:     p.Slug,
		Title:    p.Title,
		Kind:     string(p.Kind),
		NavTheme: string(p.NavTheme),
		Notice:   p.Notice,
		Degraded: p.Degraded,
		Blocks:   make([]debugBlock, 0, len(p.Blocks)),
		Gallery:  len(p.Gallery),
	}
	for _, b := range p.Blocks {
		out.Blocks = append(out.Blocks, debugBlock{Key: b.Key, Kind: string(b.Kind), RawType: b.RawType, NavTheme: string(b.NavTheme)})
	}
	RespondOK(c, out)
}

// classify maps assembly errors onto API errors.
func classify(err error) error {
	if errors.Is(err, site.ErrNotFound) {
		return apierr.New(http.StatusNotFound, "not_found", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apierr.New(http.StatusGatewayTimeout, "upstream_timeout", err)
	}
	return apierr.New(http.StatusServiceUnavailable, "upstream_unavailable", err)
}

func (h *PageHandler) fail(c *gin.Context, err error) {
	ae := classify(err)
	status := apierr.StatusOf(ae)
	if status >= http.StatusInternalServerError {
		h.log.Error("Page assembly failed", "path", c.Request.URL.Path, "error", err)
	}
	h.errorPage(c, status, "")
}

func (h *PageHandler) errorPage(c *gin.Context, status int, msg string) {
	var buf bytes.Buffer
	if err := h.layout.RenderError(&buf, status, msg, h.fallback.NavigationCopy(), h.fallback.FooterCopy()); err != nil {
		h.log.Error("Error page render failed", "error", err)
		c.String(status, http.StatusText(status))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *PageHandler) write(c *gin.Context, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.log.Error("Layout render failed", "path", c.Request.URL.Path, "error", err)
		h.errorPage(c, http.StatusInternalServerError, "")
		return
	}
	c.Header("Cache-Control", pageCacheControl)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
