package blocks

import (
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/richtext"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// introduction: heading | title, content | body | text | introduction, image.
func (r *Renderer) introduction(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	content := f.Any("content", "body", "text", "introduction")
	title := f.String("heading", "title")
	if title == "" {
		title = richtext.Flatten(content).Title
	}

	body := node.El("div",
		heading("h2", title, "section-title"),
		para(richtext.Flatten(content).Body, "lead"),
	).Class("intro-copy")
	if richtext.IsDocument(content) {
		body = node.El("div", heading("h2", title, "section-title"), prose(content, "lead")).Class("intro-copy")
	}

	grid := node.El("div", body).Class("intro-grid")
	if ref := f.Any("image", "media"); media.Present(ref) {
		grid.Class("has-media")
		grid.Append(picture(r.media().ResolveImage(ref, nil, ""), "intro-media"))
	}
	return result{node: section(b, bg, grid), surface: bg}
}

// companyIntro: heading | title (default "About the company"),
// content | companyIntro | body, logo, industry.
func (r *Renderer) companyIntro(b Block) result {
	f := b.Fields
	bg := surface(b, "off-white")
	title := f.String("heading", "title")
	if title == "" {
		title = "About the company"
	}
	aside := node.El("aside").Class("company-meta")
	if ref := f.Any("logo", "clientLogo"); media.Present(ref) {
		aside.Append(node.El("img").Attr("src", r.media().ResolveURL(ref)).Attr("alt", f.String("clientName", "name")+" logo").Class("company-logo"))
	}
	aside.Append(para(f.String("industry"), "company-industry"))

	return result{node: section(b, bg,
		heading("h2", title, "section-title"),
		node.El("div", prose(f.Any("content", "companyIntro", "body")), aside).Class("company-grid"),
	), surface: bg}
}

// painPoints: heading | title, description | subheading,
// painPoints | items | points[] { title | heading, description | body | text, icon }.
func (r *Renderer) painPoints(b Block) result {
	f := b.Fields
	bg := surface(b, "light-gray")
	list := node.El("ol").Class("pain-points")
	for i, it := range f.Slice("painPoints", "items", "points") {
		li := node.El("li").Class("pain-point")
		if ref := it.Any("icon"); media.Present(ref) {
			li.Append(node.El("img").Attr("src", r.media().ResolveURL(ref)).Attr("alt", "").Class("pain-point-icon"))
		} else {
			li.Append(node.El("span", node.Text(twoDigit(i+1))).Class("pain-point-index"))
		}
		li.Append(
			heading("h3", it.String("title", "heading"), "pain-point-title"),
			para(textOf(it, "description", "body", "text"), "pain-point-body"),
		)
		list.Append(li)
	}
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		list,
	), surface: bg}
}

// bodyText: heading | title, content | body | richText, alignment | textAlign.
func (r *Renderer) bodyText(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	return result{node: section(b, bg,
		node.El("div",
			heading("h2", f.String("heading", "title"), "section-title"),
			prose(f.Any("content", "body", "richText")),
		).Class("body-text", tokens.ResolveAlignment(f.String("alignment", "textAlign"))),
	), surface: bg}
}

// caseStudyBodyText: label | eyebrow, heading | title | sectionTitle,
// content | body. Rendered as a label column beside plain paragraphs.
func (r *Renderer) caseStudyBodyText(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	content := f.Any("content", "body", "richText")
	title := f.String("heading", "title", "sectionTitle")
	if title == "" {
		title = richtext.Flatten(content).Title
	}
	paras := node.El("div").Class("cs-body-copy")
	for _, p := range splitParagraphs(richtext.Flatten(content).Body) {
		paras.Append(para(p))
	}
	return result{node: section(b, bg,
		node.El("div",
			node.El("div", para(f.String("label", "eyebrow"), "eyebrow"), heading("h2", title, "section-title")).Class("cs-body-label"),
			paras,
		).Class("cs-body-grid"),
	), surface: bg}
}

// twoColumnText: heading | title, leftColumn | left | columnOne,
// rightColumn | right | columnTwo.
func (r *Renderer) twoColumnText(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		node.El("div",
			node.El("div", rich(f.Any("leftColumn", "left", "columnOne"))...).Class("column"),
			node.El("div", rich(f.Any("rightColumn", "right", "columnTwo"))...).Class("column"),
		).Class("two-column"),
	), surface: bg}
}

func twoDigit(n int) string {
	if n < 10 {
		return "0" + itoa(n)
	}
	return itoa(n)
}
