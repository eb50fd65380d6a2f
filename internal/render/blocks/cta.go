package blocks

import (
	"strings"

	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

type CTAWidth string

const (
	CTAFull      CTAWidth = "full"
	CTAContainer CTAWidth = "container"
)

// cta fields:
//
//	heading | title, description | subheading | body
//	primaryCTA | primaryButton | button, secondaryCTA | secondaryButton
//	widthMode | width | layout      full (default) or container
//	backgroundColor ...             panel colour (default brand)
//	outerBackground | sectionBackground
//	                                container mode only; defaults to the next
//	                                block's background, then white
func (r *Renderer) cta(b Block, c Context) result {
	f := b.Fields
	bg := surface(b, "brand")
	inner := []*node.Node{
		heading("h2", f.String("heading", "title"), "cta-title"),
		para(textOf(f, "description", "subheading", "body"), "cta-body"),
		buttons(f),
	}

	if ParseCTAWidth(f.String("widthMode", "width", "layout")) == CTAFull {
		s := section(b, bg, node.El("div", inner...).Class("cta-content"))
		s.Class("cta-full")
		return result{node: s, surface: bg}
	}

	outer := tokens.ResolveBackgroundTheme(ctaOuterToken(b, c))
	s := sectionShell(b, outer).Class("cta-container")
	s.Append(node.El("div",
		node.El("div", node.El("div", inner...).Class("cta-content")).
			Class("cta-panel", "rounded", bg.StyleClass).
			Attr("data-theme", string(bg.Theme)),
	).Class("container"))
	return result{node: s, surface: outer}
}

func ParseCTAWidth(s string) CTAWidth {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "container", "contained", "inset", "boxed":
		return CTAContainer
	default:
		return CTAFull
	}
}

func ctaOuterToken(b Block, c Context) string {
	if t := b.Fields.String("outerBackground", "sectionBackground"); t != "" {
		return t
	}
	if c.Next != nil && c.Next.Background != "" {
		return c.Next.Background
	}
	return "white"
}
