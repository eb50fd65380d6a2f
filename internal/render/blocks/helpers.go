package blocks

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/richtext"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// surface resolves the block's background token, using def when unset.
func surface(b Block, def string) tokens.Background {
	tok := b.Background
	if tok == "" {
		tok = def
	}
	return tokens.ResolveBackgroundTheme(tok)
}

// section is the standard wrapper: the background and vertical spacing sit on
// the outer element, content inside a centred container.
func section(b Block, bg tokens.Background, children ...*node.Node) *node.Node {
	s := sectionShell(b, bg)
	return s.Append(node.El("div", children...).Class("container"))
}

func sectionShell(b Block, bg tokens.Background) *node.Node {
	sp := tokens.ResolveSpacing(b.SpacingTop, b.SpacingBottom)
	s := node.El("section").
		AttrIf("id", b.Anchor()).
		Class("block", b.Kind.Class(), bg.StyleClass).
		Class(sp.Classes()...).
		Attr("data-block-type", b.RawType).
		Attr("data-theme", string(bg.Theme))
	if !sp.Top.IsZero() {
		s.Style("padding-top: " + sp.Top.Value)
	}
	if !sp.Bottom.IsZero() {
		s.Style("padding-bottom: " + sp.Bottom.Value)
	}
	return s
}

func heading(tag, text string, classes ...string) *node.Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return node.El(tag, node.Text(text)).Class(classes...)
}

func para(text string, classes ...string) *node.Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return node.El("p", node.Text(text)).Class(classes...)
}

// textOf reads a field that may be a plain string or a rich-text document.
func textOf(f fields.Raw, aliases ...string) string {
	if s := f.String(aliases...); s != "" {
		return s
	}
	return richtext.FlattenToParagraphs(f.Any(aliases...))
}

// rich renders a string or rich-text document as headings, paragraphs and
// lists, keeping bold spans.
func rich(v any) []*node.Node {
	if s, ok := v.(string); ok {
		var out []*node.Node
		for _, p := range strings.Split(s, "\n\n") {
			out = append(out, para(strings.TrimSpace(p)))
		}
		return compact(out)
	}
	var out []*node.Node
	for _, tb := range richtext.Blocks(v) {
		switch tb.Kind {
		case richtext.KindHeading:
			tag := tb.Tag
			if tag == "" || tag == "h1" {
				tag = "h3"
			}
			out = append(out, node.El(tag, spanNodes(tb.Spans)...))
		case richtext.KindParagraph:
			if tb.Text() != "" {
				out = append(out, node.El("p", spanNodes(tb.Spans)...))
			}
		case richtext.KindList:
			tag := "ul"
			if tb.Tag == "number" || tb.Tag == "ol" {
				tag = "ol"
			}
			list := node.El(tag)
			for _, it := range tb.Items {
				list.Append(node.El("li", spanNodes(it)...))
			}
			out = append(out, list)
		}
	}
	return out
}

func spanNodes(spans []richtext.Span) []*node.Node {
	out := make([]*node.Node, 0, len(spans))
	for _, s := range spans {
		if s.Bold {
			out = append(out, node.El("strong", node.Text(s.Text)))
		} else {
			out = append(out, node.Text(s.Text))
		}
	}
	return out
}

func prose(v any, classes ...string) *node.Node {
	children := rich(v)
	if len(children) == 0 {
		return nil
	}
	return node.El("div", children...).Class(append([]string{"prose"}, classes...)...)
}

func compact(in []*node.Node) []*node.Node {
	out := in[:0]
	for _, n := range in {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func buttonNode(b fields.Button, primary bool) *node.Node {
	variant := "btn-secondary"
	if primary {
		variant = "btn-primary"
	}
	if b.Style != "" {
		variant = "btn-" + tokens.NormalizeToken(b.Style)
	}
	a := node.El("a", node.Text(b.Text)).Class("btn", variant).Attr("href", b.Href)
	if b.NewTab {
		a.Attr("target", "_blank").Attr("rel", "noopener noreferrer")
	}
	return a
}

// buttons renders the primary and secondary call-to-action links, if any.
func buttons(f fields.Raw) *node.Node {
	row := node.El("div").Class("button-row")
	if b, ok := fields.ButtonFrom(f, "primaryCTA", "primaryButton", "button", "cta", "link"); ok {
		row.Append(buttonNode(b, true))
	}
	if b, ok := fields.ButtonFrom(f, "secondaryCTA", "secondaryButton"); ok {
		row.Append(buttonNode(b, false))
	}
	for _, raw := range f.Slice("buttons", "links") {
		if b, ok := fields.ParseButton(raw); ok {
			row.Append(buttonNode(b, len(row.Children) == 0))
		}
	}
	if len(row.Children) == 0 {
		return nil
	}
	return row
}

// picture renders a responsive image. The mobile source is omitted when it
// matches desktop.
func picture(img media.ResponsiveImage, classes ...string) *node.Node {
	p := node.El("picture").Class(classes...)
	if img.Mobile != "" && img.Mobile != img.Desktop {
		p.Append(node.El("source").Attr("media", "(max-width: 767px)").Attr("srcset", img.Mobile))
	}
	return p.Append(node.El("img").Attr("src", img.Desktop).Attr("alt", img.Alt).Attr("loading", "lazy"))
}

// anchors hands out unique slug ids within one block.
type anchors map[string]int

func (a anchors) next(text, fallback string) string {
	id := slug.Make(text)
	if id == "" {
		id = fallback
	}
	a[id]++
	if n := a[id]; n > 1 {
		return id + "-" + strconv.Itoa(n)
	}
	return id
}

// relation returns f[key] as an object, or the item itself when the list
// holds the documents directly.
func relation(item fields.Raw, keys ...string) fields.Raw {
	if m := item.Map(keys...); m != nil {
		if v := m.Map("value"); v != nil && m.Has("relationTo") {
			return v
		}
		return m
	}
	return item
}

func itoa(n int) string { return strconv.Itoa(n) }

func splitParagraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
