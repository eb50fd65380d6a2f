package blocks

import (
	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
)

type BentoSize string

const (
	BentoLarge BentoSize = "large"
	BentoSmall BentoSize = "small"
)

var bentoPattern = [3]BentoSize{BentoLarge, BentoSmall, BentoSmall}

// BentoSlot is fixed by position alone: large, small, small, repeating.
func BentoSlot(i int) (BentoSize, int) {
	size := bentoPattern[i%len(bentoPattern)]
	if size == BentoLarge {
		return size, 2
	}
	return size, 1
}

// bentoGrid: heading | title, description,
// items | caseStudies | projects[] where each item is a case study or holds one
// under caseStudy | project. Media: resultsVideo | video, then
// featuredImage | image | heroImage | thumbnail.
func (r *Renderer) bentoGrid(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	grid := node.El("div").Class("bento-grid")
	for i, it := range f.Slice("items", "caseStudies", "projects") {
		size, span := BentoSlot(i)
		doc := relation(it, "caseStudy", "project")
		title := bentoTitle(it, doc)

		cell := node.El("article").
			Class("bento-item", "bento-"+string(size)).
			Style("grid-column: span " + itoa(span))

		var mediaNode *node.Node
		if ref := firstPresent(it, doc, "resultsVideo", "video"); ref != nil {
			mediaNode = videoElement(r.media().ResolveURL(ref), "", fields.ShowcaseVideoDefaults, "bento-media")
		} else if ref := firstPresent(it, doc, "featuredImage", "image", "heroImage", "thumbnail"); ref != nil {
			mediaNode = picture(r.media().ResolveImage(ref, nil, title), "bento-media")
		} else {
			mediaNode = node.El("div", node.Text("No media for "+firstNonEmpty(title, "case study"))).
				Class("bento-placeholder", "muted")
		}
		cell.Append(mediaNode)

		caption := node.El("div",
			para(docClient(doc), "bento-client"),
			heading("h3", title, "bento-title"),
		).Class("bento-caption")
		if s := doc.String("slug"); s != "" {
			cell.Append(node.El("a", caption).Attr("href", "/case-studies/"+s).Class("bento-link"))
		} else {
			cell.Append(caption)
		}
		grid.Append(cell)
	}
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		grid,
	), surface: bg}
}

func bentoTitle(item, doc fields.Raw) string {
	if t := firstNonEmpty(item.String("title", "label"), doc.String("title", "name")); t != "" {
		return t
	}
	if c := docClient(doc); c != "" {
		return c
	}
	if id, ok := media.IsBareID(item.Any("caseStudy", "project")); ok {
		return "Case study #" + id
	}
	return ""
}

func docClient(doc fields.Raw) string {
	return doc.String("client.name", "clientName")
}

func firstPresent(a, b fields.Raw, aliases ...string) any {
	if v := a.Any(aliases...); media.Present(v) {
		return v
	}
	if v := b.Any(aliases...); media.Present(v) {
		return v
	}
	return nil
}
