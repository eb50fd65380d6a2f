// Package media turns CMS media references into absolute URLs.
//
// A reference arrives as an upload object ({url, alt, sizes}), a bare numeric
// ID left unresolved by a shallow depth, a URL string, or nothing at all. Every
// shape resolves to a non-empty URL; anything unusable becomes the placeholder.
package media

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/render/fields"
)

const (
	DefaultPlaceholderURL = "https://placehold.co/1600x900/png?text=Image"
	DefaultAlt            = "Image"
)

type ResponsiveImage struct {
	Desktop string
	Mobile  string
	Alt     string
}

type Resolver struct {
	// PublicURL is the CMS origin root-relative URLs are joined to.
	PublicURL   string
	Placeholder string
	Log         *logger.Logger
}

func NewResolver(publicURL, placeholder string, log *logger.Logger) *Resolver {
	return &Resolver{PublicURL: publicURL, Placeholder: placeholder, Log: log}
}

func (r *Resolver) placeholder() string {
	if r == nil || strings.TrimSpace(r.Placeholder) == "" {
		return DefaultPlaceholderURL
	}
	return r.Placeholder
}

func (r *Resolver) ResolveURL(ref any) string {
	if u, ok := r.resolve(ref); ok {
		return u
	}
	return r.placeholder()
}

// ResolveVariant prefers sizes.<variant>.url and falls back to the original.
func (r *Resolver) ResolveVariant(ref any, variant string) string {
	if m := fields.MapFromAny(ref); m != nil && variant != "" {
		if u := m.String("sizes." + variant + ".url"); u != "" {
			if abs, ok := r.absolute(u); ok {
				return abs
			}
		}
	}
	return r.ResolveURL(ref)
}

// ResolveImage builds a responsive pair. The mobile image falls back to the
// desktop one, then to the desktop upload's mobile size.
func (r *Resolver) ResolveImage(desktop, mobile any, alt string) ResponsiveImage {
	img := ResponsiveImage{Desktop: r.ResolveURL(desktop)}
	if u, ok := r.resolve(mobile); ok {
		img.Mobile = u
	} else {
		img.Mobile = r.ResolveVariant(desktop, "mobile")
	}

	img.Alt = strings.TrimSpace(alt)
	if img.Alt == "" {
		img.Alt = Alt(desktop)
	}
	if img.Alt == "" {
		img.Alt = DefaultAlt
	}
	return img
}

// Present reports whether ref carries anything resolvable, including a bare ID.
func Present(ref any) bool {
	switch t := ref.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case map[string]any:
		return fields.Raw(t).String("url", "filename") != ""
	case fields.Raw:
		return t.String("url", "filename") != ""
	default:
		_, ok := IsBareID(ref)
		return ok
	}
}

func Alt(ref any) string {
	return fields.MapFromAny(ref).String("alt", "altText")
}

// IsBareID reports whether ref is an unresolved upload ID.
func IsBareID(ref any) (string, bool) {
	switch t := ref.(type) {
	case float64:
		if t > 0 && t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
	case int:
		if t > 0 {
			return strconv.Itoa(t), true
		}
	case int64:
		if t > 0 {
			return strconv.FormatInt(t, 10), true
		}
	case json.Number:
		if n, err := t.Int64(); err == nil && n > 0 {
			return t.String(), true
		}
	case string:
		s := strings.TrimSpace(t)
		if s != "" && fields.Digits(s) == s {
			return s, true
		}
	}
	return "", false
}

func (r *Resolver) resolve(ref any) (string, bool) {
	if id, ok := IsBareID(ref); ok {
		if r != nil {
			r.Log.Warn("media reference is a bare id; rendering placeholder", "media_id", id)
		}
		return "", false
	}
	switch t := ref.(type) {
	case nil:
		return "", false
	case string:
		return r.absolute(t)
	default:
		m := fields.MapFromAny(ref)
		if m == nil {
			return "", false
		}
		return r.absolute(m.String("url"))
	}
}

func (r *Resolver) absolute(raw string) (string, bool) {
	u := clean(raw)
	if u == "" {
		return "", false
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "data:") {
		return u, true
	}
	if strings.HasPrefix(u, "//") {
		return "https:" + u, true
	}
	origin := ""
	if r != nil {
		origin = strings.TrimRight(strings.TrimSpace(r.PublicURL), "/")
	}
	if origin == "" {
		return "/" + strings.TrimLeft(u, "/"), true
	}
	return origin + "/" + strings.TrimLeft(u, "/"), true
}

// clean drops whitespace the CMS export sometimes embeds inside URLs.
func clean(s string) string {
	return strings.Join(strings.Fields(s), "")
}
