package site

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/render/blocks"
	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// AssemblePage fetches the page with the navigation and footer and renders
// its layout. Drafts and missing pages return ErrNotFound.
func (a *Assembler) AssemblePage(ctx context.Context, slug string) (*Page, error) {
	slug = NormalizeSlug(slug)
	d := &degradations{}

	var (
		doc  *cms.Page
		nav  *cms.Navigation
		foot *cms.Footer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx, cancel := a.fetchCtx(gctx)
		defer cancel()
		p, err := a.cms.FindPageBySlug(fctx, slug)
		if err != nil {
			return err
		}
		doc = p
		return nil
	})
	g.Go(func() error { nav = a.navigation(gctx, d); return nil })
	g.Go(func() error { foot = a.footer(gctx, d); return nil })
	if err := g.Wait(); err != nil {
		return nil, primaryErr("page", slug, err)
	}
	if !doc.Published() {
		return nil, notFound("page", slug, nil)
	}

	out := &Page{
		ID:     doc.ID,
		Slug:   slug,
		Title:  string(doc.Title),
		Kind:   KindPage,
		Meta:   doc.Meta,
		Nav:    nav,
		Footer: foot,
	}
	layout := doc.LayoutBlocks()
	if len(layout) == 0 {
		out.Notice = emptyNotice("page", doc.ID)
	} else {
		out.Blocks = a.renderLayout(ctx, layout, d)
	}
	out.NavTheme = firstTheme(out.Blocks)
	out.Degraded = a.report(string(KindPage), slug, d)
	return out, nil
}

// AssembleCaseStudy is AssemblePage for case studies, plus a gallery of other
// published studies fetched once the study's ID is known.
func (a *Assembler) AssembleCaseStudy(ctx context.Context, slug string) (*Page, error) {
	slug = NormalizeSlug(slug)
	d := &degradations{}

	var (
		doc     *cms.CaseStudy
		gallery []cms.CaseStudy
		nav     *cms.Navigation
		foot    *cms.Footer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx, cancel := a.fetchCtx(gctx)
		cs, err := a.cms.FindCaseStudyBySlug(fctx, slug)
		cancel()
		if err != nil {
			return err
		}
		doc = cs
		if !cs.Published() {
			return nil
		}
		gallery = a.gallery(gctx, cs, d)
		return nil
	})
	g.Go(func() error { nav = a.navigation(gctx, d); return nil })
	g.Go(func() error { foot = a.footer(gctx, d); return nil })
	if err := g.Wait(); err != nil {
		return nil, primaryErr("case study", slug, err)
	}
	if !doc.Published() {
		return nil, notFound("case study", slug, nil)
	}

	title := string(doc.Title)
	if title == "" {
		title = doc.ClientName()
	}
	out := &Page{
		ID:     doc.ID,
		Slug:   slug,
		Title:  title,
		Kind:   KindCaseStudy,
		Meta:   doc.Meta,
		Nav:    nav,
		Footer: foot,
	}

	layout := []any(doc.Layout)
	if len(layout) == 0 && hasLegacy(doc) {
		layout = LegacyLayout(doc)
	}
	if len(layout) == 0 {
		out.Notice = emptyNotice("case study", doc.ID)
	} else {
		out.Blocks = a.renderLayout(ctx, layout, d)
	}
	out.Gallery = a.cards(ctx, gallery, d)
	out.NavTheme = firstTheme(out.Blocks)
	out.Degraded = a.report(string(KindCaseStudy), slug, d)
	return out, nil
}

// gallery lists other published studies, newest first, without the current
// one or duplicates.
func (a *Assembler) gallery(ctx context.Context, cs *cms.CaseStudy, d *degradations) []cms.CaseStudy {
	fctx, cancel := a.fetchCtx(ctx)
	defer cancel()
	list, err := a.cms.ListCaseStudies(fctx, cms.ListOptions{
		ExcludeID: cs.ID,
		Limit:     a.galleryLimit + 1,
		Sort:      "-updatedAt",
	})
	if err != nil {
		d.add("gallery", err)
		return nil
	}
	seen := map[string]bool{"id:" + string(cs.ID): true, "slug:" + cs.Slug: true}
	out := make([]cms.CaseStudy, 0, a.galleryLimit)
	for _, it := range list {
		if seen["id:"+string(it.ID)] || seen["slug:"+it.Slug] || !it.Published() {
			continue
		}
		seen["id:"+string(it.ID)], seen["slug:"+it.Slug] = true, true
		out = append(out, it)
		if len(out) == a.galleryLimit {
			break
		}
	}
	return out
}

// renderLayout copies the layout, fills empty blog carousels, hydrates bare
// media IDs and renders the result.
func (a *Assembler) renderLayout(ctx context.Context, layout []any, d *degradations) []blocks.Rendered {
	layout, _ = cloneValue(layout).([]any)
	a.fillBlogCarousels(ctx, layout, d)
	layout = a.hydrate(ctx, layout, d)
	return a.renderer.RenderBlocks(blocks.ParseList(layout), blocks.Context{NavTheme: tokens.ThemeLight})
}

// fillBlogCarousels gives carousels without hand-picked posts the latest
// published ones. layout must already be a private copy.
func (a *Assembler) fillBlogCarousels(ctx context.Context, layout []any, d *degradations) {
	var targets []map[string]any
	limit := 0
	for _, it := range layout {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		f := fields.Raw(m)
		if blocks.ParseKind(f.String("blockType", "type")) != blocks.KindBlogCarousel || len(f.Slice("posts", "blogPosts", "items")) > 0 {
			continue
		}
		targets = append(targets, m)
		if n := f.Int(3, "limit", "count", "numberOfPosts"); n > limit {
			limit = n
		}
	}
	if len(targets) == 0 {
		return
	}

	fctx, cancel := a.fetchCtx(ctx)
	defer cancel()
	posts, err := a.cms.ListBlogPosts(fctx, cms.ListOptions{Limit: limit})
	if err != nil {
		d.add("blog posts", err)
		return
	}
	for _, m := range targets {
		n := fields.Raw(m).Int(3, "limit", "count", "numberOfPosts")
		items := make([]any, 0, n)
		for i := 0; i < len(posts) && i < n; i++ {
			items = append(items, posts[i].Card())
		}
		m["posts"] = items
	}
}

func hasLegacy(cs *cms.CaseStudy) bool {
	return cs.HasLegacyContent() || cs.HeroHeading != "" || media.Present(cs.HeroImage)
}

// LegacyLayout rebuilds a pre-block case study as hero, introduction,
// company intro and pain points, skipping sections with no content.
func LegacyLayout(cs *cms.CaseStudy) []any {
	heading := string(cs.HeroHeading)
	if heading == "" {
		heading = string(cs.Title)
	}
	out := []any{map[string]any{
		"blockType":       string(blocks.KindHero),
		"id":              "legacy-hero",
		"heading":         heading,
		"subheading":      string(cs.HeroSubheading),
		"backgroundImage": cs.HeroImage,
	}}
	if hasContent(cs.Introduction) {
		out = append(out, map[string]any{
			"blockType": string(blocks.KindIntroduction),
			"id":        "legacy-introduction",
			"content":   cs.Introduction,
		})
	}
	if hasContent(cs.CompanyIntro) {
		m := map[string]any{
			"blockType": string(blocks.KindCompanyIntro),
			"id":        "legacy-company-intro",
			"content":   cs.CompanyIntro,
		}
		if c := cs.Client.Doc; c != nil {
			m["clientName"] = string(c.Name)
			m["industry"] = string(c.Industry)
			m["logo"] = c.Logo
		}
		out = append(out, m)
	}
	if len(cs.PainPoints) > 0 {
		out = append(out, map[string]any{
			"blockType":  string(blocks.KindPainPoints),
			"id":         "legacy-pain-points",
			"painPoints": []any(cs.PainPoints),
		})
	}
	return out
}

func hasContent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

func emptyNotice(what string, id cms.ID) string {
	return fmt.Sprintf("No layout blocks found for this %s (ID: %s).", what, id)
}

func firstTheme(list []blocks.Rendered) tokens.Theme {
	if len(list) > 0 && list[0].NavTheme != "" {
		return list[0].NavTheme
	}
	return tokens.ThemeLight
}
