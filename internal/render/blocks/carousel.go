package blocks

import (
	"time"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
)

// blogCarousel: heading | title, viewAll | viewAllLink (button),
// posts | blogPosts | items[] { title, slug, excerpt | summary | description,
// featuredImage | image | coverImage, publishedAt | date }. Items may hold the
// post under post | blogPost.
func (r *Renderer) blogCarousel(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	track := node.El("div").Class("carousel-track", "blog-track")
	for _, it := range f.Slice("posts", "blogPosts", "items") {
		post := relation(it, "post", "blogPost")
		title := post.String("title")
		card := node.El("article").Class("blog-card")
		if ref := post.Any("featuredImage", "image", "coverImage"); media.Present(ref) {
			card.Append(picture(r.media().ResolveImage(ref, nil, title), "blog-card-media"))
		}
		card.Append(
			para(postDate(post.String("publishedAt", "date")), "blog-card-date"),
			heading("h3", title, "blog-card-title"),
			para(textOf(post, "excerpt", "summary", "description"), "blog-card-excerpt"),
		)
		if s := post.String("slug"); s != "" {
			card = node.El("a", card).Attr("href", "/blog/"+s).Class("blog-card-link")
		}
		track.Append(card)
	}
	if len(track.Children) == 0 {
		track.Append(node.El("p", node.Text("No posts yet.")).Class("muted"))
	}

	head := node.El("div", heading("h2", f.String("heading", "title"), "section-title")).Class("carousel-header")
	if btn, ok := fields.ButtonFrom(f, "viewAll", "viewAllLink"); ok {
		head.Append(buttonNode(btn, false))
	}
	return result{node: section(b, bg, head, track), surface: bg}
}

func postDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("Jan 2, 2006")
		}
	}
	return s
}

// carousel / scrollHijackCarousel: heading | title, description,
// slides | items | cards[] { title | heading, description | body | text,
// image | media, mobileImage, link | button }.
// carousel only: autoplay (default false), interval ms (default 5000).
func (r *Renderer) carousel(b Block, hijack bool) result {
	f := b.Fields
	def := "white"
	if hijack {
		def = "black"
	}
	bg := surface(b, def)

	track := node.El("div").Class("carousel-track")
	slides := f.Slice("slides", "items", "cards")
	for i, it := range slides {
		slide := node.El("article").
			Class("carousel-slide").
			Attr("data-index", itoa(i)).
			Attr("aria-label", itoa(i+1)+" of "+itoa(len(slides)))
		if ref := it.Any("image", "media"); media.Present(ref) {
			slide.Append(picture(r.media().ResolveImage(ref, it.Any("mobileImage"), it.String("alt")), "carousel-media"))
		}
		slide.Append(
			heading("h3", it.String("title", "heading"), "carousel-title"),
			para(textOf(it, "description", "body", "text"), "carousel-body"),
		)
		if btn, ok := fields.ButtonFrom(it, "link", "button"); ok {
			slide.Append(buttonNode(btn, false))
		}
		track.Append(slide)
	}

	s := section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		track,
	).Attr("aria-roledescription", "carousel")
	if hijack {
		s.Class("scroll-hijack").
			Attr("data-scroll-hijack", "true").
			Style("--slide-count: " + itoa(len(slides)))
	} else {
		s.Attr("data-autoplay", boolAttr(f.Bool(false, "autoplay"))).
			Attr("data-interval", itoa(f.Int(5000, "interval", "autoplayInterval")))
	}
	return result{node: s, surface: bg}
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
