package blocks

import (
	"strings"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/node"
)

// servicesSection / servicesGrid: heading | title, description | subheading,
// columns (grid only, default 3),
// services | items[] { title | name, description | summary | body,
// icon | image, href | link | url }. Items may be service documents
// (inlined relations), in which case slug links to /services/<slug>.
func (r *Renderer) services(b Block, asGrid bool) result {
	f := b.Fields
	bg := surface(b, "white")

	list := node.El("div").Class("services-list")
	if asGrid {
		cols := f.Int(3, "columns")
		if cols < 1 || cols > 6 {
			cols = 3
		}
		list = node.El("div").Class("services-grid", "cols-"+itoa(cols))
	}

	for i, it := range f.Slice("services", "items") {
		doc := relation(it, "service")
		title := firstNonEmpty(it.String("title", "name"), doc.String("title", "name"))
		card := node.El("article").Class("service")
		if ref := firstPresent(it, doc, "icon", "image"); ref != nil {
			card.Append(node.El("img").Attr("src", r.media().ResolveURL(ref)).Attr("alt", "").Class("service-icon"))
		} else if !asGrid {
			card.Append(node.El("span", node.Text(twoDigit(i+1))).Class("service-index"))
		}
		card.Append(
			heading("h3", title, "service-title"),
			para(firstNonEmpty(textOf(it, "description", "summary", "body"), textOf(doc, "description", "summary", "excerpt")), "service-body"),
		)
		if href := serviceHref(it, doc); href != "" {
			card.Append(node.El("a", node.Text("Learn more")).Attr("href", href).Class("service-link"))
		}
		list.Append(card)
	}

	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		list,
	), surface: bg}
}

func serviceHref(item, doc fields.Raw) string {
	if h := item.String("href", "link", "url"); h != "" && !strings.HasPrefix(h, "/media/") {
		return h
	}
	if s := doc.String("slug"); s != "" {
		return "/services/" + s
	}
	return ""
}

