package blocks

import (
	"strconv"
	"strings"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

// Default split ratios. Each block kind documents its own and authors rely
// on them, so they are deliberately not shared.
const (
	SplitRatioSplitBackground = 30
	SplitRatioSingleImage     = 30
	SplitRatioDualImage       = 50
	SplitRatioShowcaseDual    = 60
)

// Split is a two-band background. The top band covers 100-Ratio percent of
// the block and the bottom band Ratio percent.
type Split struct {
	Ratio        int
	TopHeight    int
	BottomHeight int
	Top          tokens.Background
	Bottom       tokens.Background
}

func SplitFor(f fields.Raw, defRatio int) Split {
	ratio := fields.SplitRatio(f, defRatio)
	return Split{
		Ratio:        ratio,
		TopHeight:    100 - ratio,
		BottomHeight: ratio,
		Top:          tokens.ResolveBackgroundTheme(fields.SplitTopColor(f)),
		Bottom:       tokens.ResolveBackgroundTheme(fields.SplitBottomColor(f)),
	}
}

func (s Split) bands() *node.Node {
	return node.El("div",
		node.El("div").Class("split-band", "split-band-top", s.Top.StyleClass).
			Style("position: absolute", "left: 0", "right: 0", "top: 0", "height: "+strconv.Itoa(s.TopHeight)+"%"),
		node.El("div").Class("split-band", "split-band-bottom", s.Bottom.StyleClass).
			Style("position: absolute", "left: 0", "right: 0", "bottom: 0", "height: "+strconv.Itoa(s.BottomHeight)+"%"),
	).Class("split-background").Attr("aria-hidden", "true").Attr("data-split-ratio", strconv.Itoa(s.Ratio))
}

// framed wraps image content either in a plain section or, when split is
// set, over two colour bands. The nav sits over the top band.
func framed(b Block, split *Split, content ...*node.Node) result {
	if split == nil {
		bg := surface(b, "white")
		return result{node: section(b, bg, content...), surface: bg}
	}
	s := sectionShell(b, split.Top).Class("has-split-background").Style("position: relative")
	s.Append(split.bands())
	s.Append(node.El("div", content...).Class("container").Style("position: relative"))
	return result{node: s, surface: split.Top}
}

func (r *Renderer) figure(ref, mobile any, alt, caption string, classes ...string) *node.Node {
	img := r.media().ResolveImage(ref, mobile, alt)
	return node.El("figure",
		picture(img),
		optional(caption != "", func() *node.Node { return node.El("figcaption", node.Text(caption)) }),
	).Class(append([]string{"image-figure"}, classes...)...)
}

// singleImage: image | media, mobileImage, alt, caption, fullWidth,
// backgroundType "split" with split colours and splitRatio (default 30).
func (r *Renderer) singleImage(b Block) result {
	f := b.Fields
	var split *Split
	if fields.BackgroundType(f) == "split" {
		s := SplitFor(f, SplitRatioSingleImage)
		split = &s
	}
	fig := r.figure(f.Any("image", "media"), f.Any("mobileImage"), f.String("alt"), f.String("caption"))
	if f.Bool(false, "fullWidth") {
		fig.Class("full-bleed")
	}
	return framed(b, split, fig)
}

// dualImage: leftImage | image1 | firstImage, rightImage | image2 | secondImage
// (or images[0..1]), captions, split with default ratio 50.
func (r *Renderer) dualImage(b Block) result {
	f := b.Fields
	var split *Split
	if fields.BackgroundType(f) == "split" {
		s := SplitFor(f, SplitRatioDualImage)
		split = &s
	}
	return framed(b, split, r.pair(f))
}

func (r *Renderer) pair(f fields.Raw) *node.Node {
	left, right := f.Any("leftImage", "image1", "firstImage"), f.Any("rightImage", "image2", "secondImage")
	if list := f.List("images"); len(list) > 0 {
		if left == nil {
			left = showcaseRef(list[0])
		}
		if right == nil && len(list) > 1 {
			right = showcaseRef(list[1])
		}
	}
	return node.El("div",
		r.figure(left, nil, f.String("leftAlt"), f.String("leftCaption")),
		r.figure(right, nil, f.String("rightAlt"), f.String("rightCaption")),
	).Class("image-pair")
}

// splitBackgroundImage: image | media, mobileImage, caption; always split,
// default ratio 30.
func (r *Renderer) splitBackgroundImage(b Block) result {
	f := b.Fields
	s := SplitFor(f, SplitRatioSplitBackground)
	return framed(b, &s, r.figure(f.Any("image", "media"), f.Any("mobileImage"), f.String("alt"), f.String("caption")))
}

// imageShowcase: layout | variant in {single, dual, grid},
// images[] { image | media, caption } or image / leftImage / rightImage,
// video | showcaseVideo with settings (autoplay, muted, loop and pauseOnExit
// all default on). The "dual" layout is the legacy variant: always split,
// default ratio 60.
func (r *Renderer) imageShowcase(b Block) result {
	f := b.Fields
	layout := strings.ToLower(f.String("layout", "variant"))

	var split *Split
	switch {
	case layout == "dual":
		s := SplitFor(f, SplitRatioShowcaseDual)
		split = &s
	case fields.BackgroundType(f) == "split":
		s := SplitFor(f, SplitRatioSingleImage)
		split = &s
	}

	var content []*node.Node
	content = append(content, heading("h2", f.String("heading", "title"), "section-title"))

	if ref := f.Any("video", "showcaseVideo"); media.Present(ref) {
		settings := fields.VideoSettingsFrom(f, fields.ShowcaseVideoDefaults)
		content = append(content, node.El("div",
			videoElement(r.media().ResolveURL(ref), posterURL(r, f), settings),
		).Class("showcase-video"))
		return framed(b, split, content...)
	}

	switch layout {
	case "dual":
		content = append(content, r.pair(f))
	case "grid":
		grid := node.El("div").Class("image-grid")
		for _, it := range f.List("images") {
			grid.Append(r.figure(showcaseRef(it), nil, "", showcaseCaption(it)))
		}
		content = append(content, grid)
	default:
		ref := f.Any("image", "media")
		caption := f.String("caption")
		if ref == nil {
			if list := f.List("images"); len(list) > 0 {
				ref, caption = showcaseRef(list[0]), showcaseCaption(list[0])
			}
		}
		content = append(content, r.figure(ref, f.Any("mobileImage"), f.String("alt"), caption))
	}
	return framed(b, split, content...)
}

// showcaseRef accepts either a bare media reference or a wrapper row
// holding one under image or media.
func showcaseRef(v any) any {
	m := fields.MapFromAny(v)
	if m == nil || m.Has("url") {
		return v
	}
	return m.Any("image", "media")
}

func showcaseCaption(v any) string {
	m := fields.MapFromAny(v)
	if m == nil || m.Has("url") {
		return ""
	}
	return m.String("caption")
}

func posterURL(r *Renderer, f fields.Raw) string {
	if ref := f.Any("poster", "posterImage", "thumbnail"); media.Present(ref) {
		return r.media().ResolveURL(ref)
	}
	return ""
}

func optional(ok bool, fn func() *node.Node) *node.Node {
	if !ok {
		return nil
	}
	return fn()
}
