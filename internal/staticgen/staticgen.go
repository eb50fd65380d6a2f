// Package staticgen writes every published page and case study to disk as
// static HTML, plus the listings, an error page and sitemap.xml.
package staticgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/site"
	"github.com/yungbote/blockpage/internal/site/layout"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type Assembler interface {
	AssemblePage(ctx context.Context, slug string) (*site.Page, error)
	AssembleCaseStudy(ctx context.Context, slug string) (*site.Page, error)
	AssembleCaseStudyIndex(ctx context.Context) (*site.Listing, error)
	AssembleCategory(ctx context.Context, slug string) (*site.Listing, error)
}

// Lister enumerates what gets built.
type Lister interface {
	ListPages(ctx context.Context, opts cms.ListOptions) ([]cms.Page, error)
	ListCaseStudies(ctx context.Context, opts cms.ListOptions) ([]cms.CaseStudy, error)
	ListCategories(ctx context.Context) ([]cms.Category, error)
}

type Options struct {
	CMS       Lister
	Assembler Assembler
	Layout    *layout.Renderer
	Log       *logger.Logger
	// BaseURL prefixes sitemap locations; sitemap.xml is skipped when empty.
	BaseURL     string
	Concurrency int
	// ListLimit caps each collection listing.
	ListLimit int
}

type Builder struct {
	cms         Lister
	assembler   Assembler
	layout      *layout.Renderer
	log         *logger.Logger
	baseURL     string
	concurrency int
	listLimit   int
}

// Report lists the site paths written and skipped by a build.
type Report struct {
	Written  []string
	Skipped  []string
	Degraded map[string][]string
}

type entry struct {
	path    string
	lastmod string
}

func New(opts Options) (*Builder, error) {
	if opts.CMS == nil || opts.Assembler == nil || opts.Layout == nil {
		return nil, errors.New("staticgen: CMS, Assembler and Layout are required")
	}
	b := &Builder{
		cms:         opts.CMS,
		assembler:   opts.Assembler,
		layout:      opts.Layout,
		log:         opts.Log,
		baseURL:     strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		concurrency: opts.Concurrency,
		listLimit:   opts.ListLimit,
	}
	if b.log == nil {
		b.log = logger.Nop()
	}
	if b.concurrency <= 0 {
		b.concurrency = 4
	}
	if b.listLimit <= 0 {
		b.listLimit = 500
	}
	return b, nil
}

// Build renders the whole site into out. Pages that fail to assemble are
// reported in the returned error; the rest of the site is still written.
func (b *Builder) Build(ctx context.Context, out string) (*Report, error) {
	if strings.TrimSpace(out) == "" {
		return nil, errors.New("staticgen: output directory is required")
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", out, err)
	}

	var (
		pages   []cms.Page
		studies []cms.CaseStudy
		cats    []cms.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pages, err = b.cms.ListPages(gctx, cms.ListOptions{Limit: b.listLimit})
		return err
	})
	g.Go(func() (err error) {
		studies, err = b.cms.ListCaseStudies(gctx, cms.ListOptions{Limit: b.listLimit})
		return err
	})
	g.Go(func() error {
		// Category pages are optional; the index still builds without them.
		var err error
		if cats, err = b.cms.ListCategories(gctx); err != nil {
			b.log.Warn("Category listing failed; skipping category pages", "error", err)
			cats = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	var (
		mu      sync.Mutex
		errs    error
		entries []entry
		report  = &Report{Degraded: map[string][]string{}}
	)
	record := func(e entry, degraded []string) {
		mu.Lock()
		defer mu.Unlock()
		entries = append(entries, e)
		report.Written = append(report.Written, e.path)
		if len(degraded) > 0 {
			report.Degraded[e.path] = degraded
		}
	}
	fail := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if errors.Is(err, site.ErrNotFound) {
			report.Skipped = append(report.Skipped, path)
			return
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
	}

	var wg errgroup.Group
	wg.SetLimit(b.concurrency)

	for _, p := range pages {
		if !p.Published() {
			continue
		}
		s := site.NormalizeSlug(p.Slug)
		lastmod := string(p.UpdatedAt)
		wg.Go(func() error {
			page, err := b.assembler.AssemblePage(ctx, s)
			if err != nil {
				fail(pagePath(s), err)
				return nil
			}
			if err := b.writePage(out, page); err != nil {
				fail(page.Path(), err)
				return nil
			}
			record(entry{path: page.Path(), lastmod: lastmod}, page.Degraded)
			return nil
		})
	}
	for _, cs := range studies {
		if !cs.Published() || strings.TrimSpace(cs.Slug) == "" {
			continue
		}
		s := cs.Slug
		lastmod := string(cs.UpdatedAt)
		wg.Go(func() error {
			page, err := b.assembler.AssembleCaseStudy(ctx, s)
			if err != nil {
				fail("/case-studies/"+s, err)
				return nil
			}
			if err := b.writePage(out, page); err != nil {
				fail(page.Path(), err)
				return nil
			}
			record(entry{path: page.Path(), lastmod: lastmod}, page.Degraded)
			return nil
		})
	}
	wg.Go(func() error {
		l, err := b.assembler.AssembleCaseStudyIndex(ctx)
		if err != nil {
			fail("/case-studies", err)
			return nil
		}
		if err := b.writeListing(out, l); err != nil {
			fail(l.Path(), err)
			return nil
		}
		record(entry{path: l.Path()}, l.Degraded)
		return nil
	})
	for _, cat := range cats {
		if strings.TrimSpace(cat.Slug) == "" {
			continue
		}
		s := cat.Slug
		wg.Go(func() error {
			l, err := b.assembler.AssembleCategory(ctx, s)
			if err != nil {
				fail("/case-studies/category/"+s, err)
				return nil
			}
			if err := b.writeListing(out, l); err != nil {
				fail(l.Path(), err)
				return nil
			}
			record(entry{path: l.Path()}, l.Degraded)
			return nil
		})
	}
	_ = wg.Wait()

	if err := b.writeErrorPage(out); err != nil {
		errs = multierr.Append(errs, err)
	}
	if b.baseURL != "" {
		if err := writeSitemap(filepath.Join(out, "sitemap.xml"), b.baseURL, entries); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	sort.Sort(natural.StringSlice(report.Written))
	sort.Sort(natural.StringSlice(report.Skipped))
	b.log.Info("Static build finished",
		"out", out,
		"written", len(report.Written),
		"skipped", len(report.Skipped),
		"degraded", len(report.Degraded),
		"failed", len(multierr.Errors(errs)),
	)
	return report, errs
}

func (b *Builder) writePage(out string, p *site.Page) error {
	var buf bytes.Buffer
	if err := b.layout.RenderPage(&buf, p); err != nil {
		return err
	}
	return writeFile(out, p.Path(), buf.Bytes())
}

func (b *Builder) writeListing(out string, l *site.Listing) error {
	var buf bytes.Buffer
	if err := b.layout.RenderListing(&buf, l); err != nil {
		return err
	}
	return writeFile(out, l.Path(), buf.Bytes())
}

func (b *Builder) writeErrorPage(out string) error {
	var buf bytes.Buffer
	if err := b.layout.RenderError(&buf, http.StatusNotFound, "", nil, nil); err != nil {
		return fmt.Errorf("render 404: %w", err)
	}
	return os.WriteFile(filepath.Join(out, "404.html"), buf.Bytes(), 0o644)
}

func pagePath(s string) string {
	if s == site.HomeSlug {
		return "/"
	}
	return "/" + s
}

// OutputFile maps a site path to its file under out: "/" is index.html and
// every other path becomes <path>/index.html. Segments are slugified so CMS
// slugs cannot escape out.
func OutputFile(out, sitePath string) string {
	parts := []string{out}
	for _, seg := range strings.Split(strings.Trim(sitePath, "/"), "/") {
		if seg == "" {
			continue
		}
		if clean := slug.Make(seg); clean != "" {
			parts = append(parts, clean)
		}
	}
	parts = append(parts, "index.html")
	return filepath.Join(parts...)
}

func writeFile(out, sitePath string, data []byte) error {
	target := OutputFile(out, sitePath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

func writeSitemap(target, baseURL string, entries []entry) error {
	sort.Slice(entries, func(i, j int) bool { return natural.Less(entries[i].path, entries[j].path) })

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNS)
	for _, e := range entries {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(baseURL + e.path)
		if d := lastmodDate(e.lastmod); d != "" {
			u.CreateElement("lastmod").SetText(d)
		}
	}
	doc.Indent(2)
	if err := doc.WriteToFile(target); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}

// lastmodDate keeps the date part of an ISO timestamp.
func lastmodDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return ""
	}
	return s[:10]
}
