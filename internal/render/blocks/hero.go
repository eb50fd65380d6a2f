package blocks

import (
	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/richtext"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// hero fields:
//
//	heading | title | headline
//	subheading | subtitle | description
//	content | richText            (rich text; its heading fills a missing title)
//	eyebrow | label
//	backgroundImage | image | heroImage | media
//	mobileImage | mobileBackgroundImage
//	backgroundVideo | video
//	overlayOpacity                (0-100, default 40)
//	alignment | textAlign
//	primaryCTA | primaryButton, secondaryCTA | secondaryButton
func (r *Renderer) hero(b Block) result {
	f := b.Fields
	title := f.String("heading", "title", "headline")
	sub := f.String("subheading", "subtitle", "description")
	if rt := f.Any("content", "richText"); rt != nil {
		flat := richtext.Flatten(rt)
		if title == "" {
			title = flat.Title
		}
		if sub == "" {
			sub = flat.Body
		}
	}

	bgRef := f.Any("backgroundImage", "image", "heroImage", "media")
	videoRef := f.Any("backgroundVideo", "video")
	hasImage := media.Present(bgRef)
	hasVideo := media.Present(videoRef)

	bg := surface(b, "white")
	if hasImage || hasVideo {
		// Text sits on the image behind a dark overlay.
		bg = tokens.Background{Token: "image", StyleClass: "surface-image", Theme: tokens.ThemeDark}
	}

	s := sectionShell(b, bg).Class("hero")
	if hasImage {
		img := r.media().ResolveImage(bgRef, f.Any("mobileImage", "mobileBackgroundImage"), f.String("imageAlt", "alt"))
		s.Append(picture(img, "hero-media"))
	}
	if hasVideo {
		settings := fields.VideoSettingsFrom(f, fields.ShowcaseVideoDefaults)
		poster := posterURL(r, f)
		if poster == "" && hasImage {
			poster = r.media().ResolveURL(bgRef)
		}
		s.Append(videoElement(r.media().ResolveURL(videoRef), poster, settings, "hero-media"))
	}
	if hasImage || hasVideo {
		opacity := fields.ClampPercent(f.Int(40, "overlayOpacity"))
		s.Append(node.El("div").Class("hero-overlay").Style("opacity: " + percentFraction(opacity)))
	}

	s.Append(node.El("div",
		para(f.String("eyebrow", "label"), "eyebrow"),
		heading("h1", title, "hero-title"),
		para(sub, "hero-subtitle"),
		buttons(f),
	).Class("container", "hero-content", tokens.ResolveAlignment(f.String("alignment", "textAlign"))))

	return result{node: s, surface: bg}
}

// pageHeader fields:
//
//	title | heading, subtitle | subheading | description
//	eyebrow | label | breadcrumb
//	image | backgroundImage
//	alignment
func (r *Renderer) pageHeader(b Block) result {
	f := b.Fields
	bgRef := f.Any("image", "backgroundImage")
	bg := surface(b, "white")
	s := sectionShell(b, bg).Class("page-header")
	if media.Present(bgRef) {
		bg = tokens.Background{Token: "image", StyleClass: "surface-image", Theme: tokens.ThemeDark}
		s = sectionShell(b, bg).Class("page-header")
		s.Append(picture(r.media().ResolveImage(bgRef, f.Any("mobileImage"), ""), "page-header-media"))
	}
	s.Append(node.El("div",
		para(f.String("eyebrow", "label", "breadcrumb"), "eyebrow"),
		heading("h1", f.String("title", "heading"), "page-title"),
		para(textOf(f, "subtitle", "subheading", "description"), "page-subtitle"),
	).Class("container", tokens.ResolveAlignment(f.String("alignment", "textAlign"))))
	return result{node: s, surface: bg}
}

func percentFraction(p int) string {
	switch {
	case p <= 0:
		return "0"
	case p >= 100:
		return "1"
	case p%10 == 0:
		return "0." + itoa(p/10)
	case p < 10:
		return "0.0" + itoa(p)
	default:
		return "0." + itoa(p)
	}
}
