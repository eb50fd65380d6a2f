// Package site assembles routed pages: it fetches the primary document and
// the site globals concurrently, fills in fallbacks for whatever failed and
// runs the layout through the block renderer.
package site

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/cms/fallback"
	"github.com/yungbote/blockpage/internal/cms/snapshot"
	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/render/blocks"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// ErrNotFound is returned for missing and unpublished documents.
var ErrNotFound = errors.New("site: not found")

const HomeSlug = "home"

type PageKind string

const (
	KindPage      PageKind = "page"
	KindCaseStudy PageKind = "case-study"
)

type Page struct {
	ID       cms.ID
	Slug     string
	Title    string
	Kind     PageKind
	Meta     cms.Meta
	Blocks   []blocks.Rendered
	Nav      *cms.Navigation
	Footer   *cms.Footer
	Gallery  []Card
	NavTheme tokens.Theme

	// Notice is shown in place of the body when a document has nothing to render.
	Notice string

	// Degraded lists the fetches that fell back, for the debug view.
	Degraded []string
}

// Path is the public URL path of the page.
func (p *Page) Path() string {
	if p.Kind == KindCaseStudy {
		return "/case-studies/" + p.Slug
	}
	if p.Slug == HomeSlug {
		return "/"
	}
	return "/" + p.Slug
}

type Listing struct {
	Title       string
	Slug        string
	Description string
	Category    *cms.Category
	Categories  []cms.Category
	Cards       []Card
	Nav         *cms.Navigation
	Footer      *cms.Footer
	Degraded    []string
}

func (l *Listing) Path() string {
	if l.Category != nil {
		return "/case-studies/category/" + l.Category.Slug
	}
	return "/case-studies"
}

type Options struct {
	CMS          cms.Client
	Renderer     *blocks.Renderer
	Media        *media.Resolver
	Fallback     *fallback.Set
	Snapshot     snapshot.Store
	Log          *logger.Logger
	Timeout      time.Duration
	GalleryLimit int

	// HydrateConcurrency bounds parallel media-by-ID fetches.
	HydrateConcurrency int
}

type Assembler struct {
	cms          cms.Client
	renderer     *blocks.Renderer
	media        *media.Resolver
	fallback     *fallback.Set
	snapshot     snapshot.Store
	log          *logger.Logger
	timeout      time.Duration
	galleryLimit int
	hydrateLimit int
}

func New(opts Options) (*Assembler, error) {
	if opts.CMS == nil {
		return nil, errors.New("site: cms client required")
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	res := opts.Media
	if res == nil {
		res = media.NewResolver("", "", log)
	}
	r := opts.Renderer
	if r == nil {
		r = blocks.NewRenderer(res, nil)
	}
	fb := opts.Fallback
	if fb == nil {
		fb = fallback.Default()
	}
	a := &Assembler{
		cms:          opts.CMS,
		renderer:     r,
		media:        res,
		fallback:     fb,
		snapshot:     opts.Snapshot,
		log:          log.With("service", "SiteAssembler"),
		timeout:      opts.Timeout,
		galleryLimit: opts.GalleryLimit,
		hydrateLimit: opts.HydrateConcurrency,
	}
	if a.timeout <= 0 {
		a.timeout = 5 * time.Second
	}
	if a.galleryLimit <= 0 {
		a.galleryLimit = 6
	}
	if a.hydrateLimit <= 0 {
		a.hydrateLimit = 4
	}
	return a, nil
}

// NormalizeSlug maps "", "/" and "index" to the home slug and strips slashes.
func NormalizeSlug(slug string) string {
	s := strings.Trim(strings.TrimSpace(slug), "/")
	if s == "" || s == "index" {
		return HomeSlug
	}
	return s
}

func (a *Assembler) fetchCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

func notFound(what, slug string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s %q", ErrNotFound, what, slug)
	}
	return fmt.Errorf("%w: %s %q: %w", ErrNotFound, what, slug, cause)
}

func primaryErr(what, slug string, err error) error {
	if errors.Is(err, cms.ErrNotFound) {
		return notFound(what, slug, err)
	}
	return fmt.Errorf("fetch %s %q: %w", what, slug, err)
}

// degradations collects fetches that fell back. Safe for concurrent use.
type degradations struct {
	mu  sync.Mutex
	err error
}

func (d *degradations) add(what string, err error) {
	d.mu.Lock()
	d.err = multierr.Append(d.err, fmt.Errorf("%s: %w", what, err))
	d.mu.Unlock()
}

func (d *degradations) list() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	errs := multierr.Errors(d.err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

// report writes one summary line per assembled document.
func (a *Assembler) report(kind, slug string, d *degradations) []string {
	list := d.list()
	if len(list) > 0 {
		a.log.Warn("Assembled with fallbacks", "kind", kind, "slug", slug, "degraded", list)
	}
	return list
}
