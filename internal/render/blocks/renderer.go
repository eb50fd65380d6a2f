// Package blocks renders CMS layout blocks into node trees.
//
// RenderBlocks is a pure function of its inputs: no I/O, no randomness, and
// the block maps are never written. Unknown block types render as a visible
// diagnostic so authors can see mapping mistakes in preview.
package blocks

import (
	"fmt"

	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// Context is what a block can see of its surroundings.
type Context struct {
	// NavTheme is the hint in effect before this block; transparent blocks inherit it.
	NavTheme tokens.Theme
	Prev     *Block
	Next     *Block
}

type Rendered struct {
	Key      string
	Kind     Kind
	RawType  string
	NavTheme tokens.Theme
	Node     *node.Node
}

type Renderer struct {
	Media *media.Resolver
	Log   *logger.Logger
}

func NewRenderer(m *media.Resolver, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{Media: m, Log: log}
}

// result is one block's node plus the surface the nav bar will sit over.
type result struct {
	node    *node.Node
	surface tokens.Background
}

// RenderBlocks renders every block in order. ctx.NavTheme seeds the hint for a
// leading transparent block; Prev and Next are filled per block.
func (r *Renderer) RenderBlocks(list []Block, ctx Context) []Rendered {
	out := make([]Rendered, 0, len(list))
	theme := ctx.NavTheme
	if theme == "" {
		theme = tokens.ThemeLight
	}
	for i := range list {
		c := Context{NavTheme: theme}
		if i > 0 {
			c.Prev = &list[i-1]
		} else {
			c.Prev = ctx.Prev
		}
		if i+1 < len(list) {
			c.Next = &list[i+1]
		} else {
			c.Next = ctx.Next
		}

		res := r.renderOne(list[i], c)
		if !res.surface.IsTransparent() && res.surface.Theme != "" {
			theme = res.surface.Theme
		}
		res.node.Attr("data-nav-theme", string(theme))
		out = append(out, Rendered{
			Key:      list[i].Key,
			Kind:     list[i].Kind,
			RawType:  list[i].RawType,
			NavTheme: theme,
			Node:     res.node,
		})
	}
	return out
}

func (r *Renderer) renderOne(b Block, c Context) (res result) {
	defer func() {
		if p := recover(); p != nil {
			r.log().Error("block render panicked", "kind", b.RawType, "key", b.Key, "panic", fmt.Sprint(p))
			res = result{node: failedNode(b, p), surface: tokens.ResolveBackgroundTheme("white")}
		}
	}()
	r.log().Debug("rendering block", "kind", b.RawType, "key", b.Key, "index", b.Index)
	return r.dispatch(b, c)
}

func (r *Renderer) dispatch(b Block, c Context) result {
	switch b.Kind {
	case KindHero:
		return r.hero(b)
	case KindPageHeader:
		return r.pageHeader(b)
	case KindIntroduction:
		return r.introduction(b)
	case KindCompanyIntro:
		return r.companyIntro(b)
	case KindPainPoints:
		return r.painPoints(b)
	case KindStatsCards:
		return r.statsCards(b)
	case KindStatsCharts:
		return r.statsCharts(b)
	case KindQuoteStandard:
		return r.quote(b, false)
	case KindQuoteFeatured:
		return r.quote(b, true)
	case KindBodyText:
		return r.bodyText(b)
	case KindCaseStudyBodyText:
		return r.caseStudyBodyText(b)
	case KindTwoColumnText:
		return r.twoColumnText(b)
	case KindImageShowcase:
		return r.imageShowcase(b)
	case KindSingleImage:
		return r.singleImage(b)
	case KindDualImage:
		return r.dualImage(b)
	case KindSplitBackgroundImage:
		return r.splitBackgroundImage(b)
	case KindVideo:
		return r.video(b)
	case KindBentoGrid:
		return r.bentoGrid(b)
	case KindCTA:
		return r.cta(b, c)
	case KindLogoGrid:
		return r.logoGrid(b)
	case KindServicesSection:
		return r.services(b, false)
	case KindServicesGrid:
		return r.services(b, true)
	case KindAwardsGrid:
		return r.awardsGrid(b)
	case KindBlogCarousel:
		return r.blogCarousel(b)
	case KindScrollHijackCarousel:
		return r.carousel(b, true)
	case KindCarousel:
		return r.carousel(b, false)
	case KindAccordion:
		return r.accordion(b)
	case KindFAQSection:
		return r.faqSection(b)
	default:
		r.log().Warn("unknown block type", "block_type", b.RawType, "key", b.Key)
		return result{node: unknownNode(b), surface: tokens.ResolveBackgroundTheme("white")}
	}
}

func (r *Renderer) log() *logger.Logger {
	if r == nil || r.Log == nil {
		return logger.Nop()
	}
	return r.Log
}

func (r *Renderer) media() *media.Resolver {
	if r == nil {
		return nil
	}
	return r.Media
}
