package blocks

import (
	"strings"

	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// quoteStandard / quoteFeatured:
//
//	quote | text | content        (string or rich text)
//	author | name | attribution
//	role | title | position, company
//	avatar | authorImage | headshot
//	backgroundImage | image       (featured only; forces a dark nav)
func (r *Renderer) quote(b Block, featured bool) result {
	f := b.Fields
	def := "off-white"
	if featured {
		def = "black"
	}
	bg := surface(b, def)

	var bgRef any
	if featured {
		bgRef = f.Any("backgroundImage", "image")
		if media.Present(bgRef) {
			bg = tokens.Background{Token: "image", StyleClass: "surface-image", Theme: tokens.ThemeDark}
		}
	}

	role := strings.Join(nonEmpty(f.String("role", "title", "position"), f.String("company")), ", ")
	cite := node.El("figcaption",
		node.El("span", node.Text(f.String("author", "name", "attribution"))).Class("quote-author"),
	).Class("quote-attribution")
	if role != "" {
		cite.Append(node.El("span", node.Text(role)).Class("quote-role"))
	}
	if ref := f.Any("avatar", "authorImage", "headshot"); media.Present(ref) {
		cite.Children = append([]*node.Node{
			node.El("img").Attr("src", r.media().ResolveURL(ref)).Attr("alt", f.String("author", "name")).Class("quote-avatar"),
		}, cite.Children...)
	}

	fig := node.El("figure",
		node.El("blockquote", node.El("p", node.Text(textOf(f, "quote", "text", "content")))),
		cite,
	).Class("quote")
	if featured {
		fig.Class("quote-featured")
	}

	s := sectionShell(b, bg)
	if bgRef != nil && media.Present(bgRef) {
		s.Append(picture(r.media().ResolveImage(bgRef, f.Any("mobileImage"), ""), "quote-media"))
		s.Append(node.El("div").Class("quote-overlay"))
	}
	s.Append(node.El("div", fig).Class("container"))
	return result{node: s, surface: bg}
}

func nonEmpty(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
