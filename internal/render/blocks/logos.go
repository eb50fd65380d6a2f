package blocks

import (
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
)

// logoGrid: heading | title, columns (default 5), grayscale,
// logos | items | clients[] { logo | image, name | alt, url | href }; an entry
// may also be the upload itself.
func (r *Renderer) logoGrid(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	cols := f.Int(5, "columns")
	if cols < 1 || cols > 8 {
		cols = 5
	}
	grid := node.El("ul").Class("logo-grid", "cols-"+itoa(cols))
	if f.Bool(false, "grayscale") {
		grid.Class("grayscale")
	}
	for _, it := range f.Slice("logos", "items", "clients") {
		ref := it.Any("logo", "image")
		if ref == nil && it.Has("url") && !it.Has("href") {
			ref = map[string]any(it)
		}
		name := firstNonEmpty(it.String("name", "alt", "title"), media.Alt(ref))
		img := node.El("img").
			Attr("src", r.media().ResolveURL(ref)).
			Attr("alt", firstNonEmpty(name, media.DefaultAlt)).
			Attr("loading", "lazy")
		li := node.El("li").Class("logo-item")
		if href := it.String("href", "link"); href != "" {
			li.Append(node.El("a", img).Attr("href", href).Attr("target", "_blank").Attr("rel", "noopener noreferrer"))
		} else {
			li.Append(img)
		}
		grid.Append(li)
	}
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		grid,
	), surface: bg}
}

// awardsGrid: heading | title, description,
// awards | items[] { title | name, year, organization | issuer | awardingBody,
// category, image | logo | badge }.
func (r *Renderer) awardsGrid(b Block) result {
	f := b.Fields
	bg := surface(b, "off-white")
	grid := node.El("div").Class("awards-grid")
	for _, it := range f.Slice("awards", "items") {
		card := node.El("article").Class("award")
		if ref := it.Any("image", "logo", "badge"); media.Present(ref) {
			card.Append(node.El("img").Attr("src", r.media().ResolveURL(ref)).Attr("alt", it.String("title", "name")).Class("award-badge"))
		}
		card.Append(
			para(it.String("year"), "award-year"),
			heading("h3", it.String("title", "name"), "award-title"),
			para(it.String("organization", "issuer", "awardingBody"), "award-org"),
			para(it.String("category"), "award-category"),
		)
		grid.Append(card)
	}
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		grid,
	), surface: bg}
}

