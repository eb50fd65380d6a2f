package site

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/richtext"
)

const listingLimit = 100

// Card is one case study in a gallery or listing.
type Card struct {
	ID         cms.ID
	Title      string
	Href       string
	Client     string
	Excerpt    string
	ImageURL   string
	ImageAlt   string
	Categories []string
}

// AssembleCaseStudyIndex lists every published case study with the category
// filter bar.
func (a *Assembler) AssembleCaseStudyIndex(ctx context.Context) (*Listing, error) {
	return a.assembleListing(ctx, "")
}

// AssembleCategory lists the published case studies in one category. A slug
// missing from the category list is ErrNotFound.
func (a *Assembler) AssembleCategory(ctx context.Context, slug string) (*Listing, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return nil, notFound("category", slug, nil)
	}
	return a.assembleListing(ctx, slug)
}

func (a *Assembler) assembleListing(ctx context.Context, categorySlug string) (*Listing, error) {
	d := &degradations{}
	var (
		studies []cms.CaseStudy
		cats    []cms.Category
		nav     *cms.Navigation
		foot    *cms.Footer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx, cancel := a.fetchCtx(gctx)
		defer cancel()
		list, err := a.cms.ListCaseStudies(fctx, cms.ListOptions{
			CategorySlug: categorySlug,
			Limit:        listingLimit,
			Sort:         "-updatedAt",
		})
		if err != nil {
			return err
		}
		studies = list
		return nil
	})
	g.Go(func() error { cats = a.categories(gctx, d); return nil })
	g.Go(func() error { nav = a.navigation(gctx, d); return nil })
	g.Go(func() error { foot = a.footer(gctx, d); return nil })
	if err := g.Wait(); err != nil {
		return nil, primaryErr("case study listing", categorySlug, err)
	}

	out := &Listing{
		Title:      "Case studies",
		Categories: cats,
		Nav:        nav,
		Footer:     foot,
	}
	if categorySlug != "" {
		var cat *cms.Category
		for i := range cats {
			if cats[i].Slug == categorySlug {
				cat = &cats[i]
				break
			}
		}
		if cat == nil {
			return nil, notFound("category", categorySlug, nil)
		}
		out.Category = cat
		out.Slug = cat.Slug
		out.Title = string(cat.Title)
		out.Description = string(cat.Description)

		// The CMS filter is authoritative when categories are inlined; bare
		// category IDs cannot be checked here and are kept.
		kept := studies[:0:0]
		for _, cs := range studies {
			if cs.InCategory(categorySlug) || !categoriesResolved(cs) {
				kept = append(kept, cs)
			}
		}
		studies = kept
	}
	out.Cards = a.cards(ctx, studies, d)
	out.Degraded = a.report("listing", categorySlug, d)
	return out, nil
}

func categoriesResolved(cs cms.CaseStudy) bool {
	for _, c := range cs.Categories {
		if !c.Resolved() {
			return false
		}
	}
	return len(cs.Categories) > 0
}

// cards builds listing cards, hydrating bare image IDs first.
func (a *Assembler) cards(ctx context.Context, list []cms.CaseStudy, d *degradations) []Card {
	if len(list) == 0 {
		return nil
	}
	refs := make([]any, len(list))
	for i, cs := range list {
		img := cs.FeaturedImage
		if img == nil {
			img = cs.HeroImage
		}
		refs[i] = map[string]any{"image": img}
	}
	refs = a.hydrate(ctx, refs, d)

	out := make([]Card, 0, len(list))
	for i, cs := range list {
		img := fields.Raw(refs[i].(map[string]any)).Any("image")
		title := string(cs.Title)
		if title == "" {
			title = cs.ClientName()
		}
		c := Card{
			ID:       cs.ID,
			Title:    title,
			Href:     "/case-studies/" + cs.Slug,
			Client:   cs.ClientName(),
			Excerpt:  string(cs.Excerpt),
			ImageURL: a.media.ResolveVariant(img, "thumbnail"),
			ImageAlt: title,
		}
		if c.Excerpt == "" {
			c.Excerpt = firstParagraph(richtext.FlattenToParagraphs(cs.Introduction))
		}
		for _, cat := range cs.Categories {
			if cat.Doc != nil && cat.Doc.Title != "" {
				c.Categories = append(c.Categories, string(cat.Doc.Title))
			}
		}
		out = append(out, c)
	}
	return out
}

func firstParagraph(s string) string {
	if i := strings.Index(s, "\n\n"); i >= 0 {
		return s[:i]
	}
	return s
}
