package fields

import (
	"strconv"
	"strings"
)

const (
	DefaultSplitTop    = "light-gray"
	DefaultSplitBottom = "white"
)

// SplitTopColor: splitBackgroundTop, topBg, topBackgroundColor, then light-gray.
func SplitTopColor(r Raw) string {
	if s := r.String("splitBackgroundTop", "topBg", "topBackgroundColor"); s != "" {
		return s
	}
	return DefaultSplitTop
}

// SplitBottomColor: splitBackgroundBottom, bottomBg, bottomBackgroundColor, then white.
func SplitBottomColor(r Raw) string {
	if s := r.String("splitBackgroundBottom", "bottomBg", "bottomBackgroundColor"); s != "" {
		return s
	}
	return DefaultSplitBottom
}

// SplitRatio is the bottom band's height in percent, clamped to [0,100].
// The default differs per block kind, so callers pass it.
func SplitRatio(r Raw, def int) int {
	v := r.Any("splitRatio", "splitPercentage", "split")
	if v == nil {
		return ClampPercent(def)
	}
	if s, ok := v.(string); ok {
		d := Digits(s)
		if d == "" {
			return ClampPercent(def)
		}
		n, _ := strconv.Atoi(d)
		return ClampPercent(n)
	}
	if n, ok := IntFromAny(v); ok {
		return ClampPercent(n)
	}
	return ClampPercent(def)
}

func BackgroundToken(r Raw, def string) string {
	if s := r.String("backgroundColor", "background", "bgColor", "theme"); s != "" {
		return s
	}
	return def
}

func SpacingTop(r Raw) string {
	return r.String("spacingTop", "spacing.top", "paddingTop")
}

func SpacingBottom(r Raw) string {
	return r.String("spacingBottom", "spacing.bottom", "paddingBottom")
}

// BackgroundType is lower-cased; "split" selects the two-band treatment.
func BackgroundType(r Raw) string {
	return strings.ToLower(r.String("backgroundType", "backgroundStyle"))
}

// ParseStatPercentage strips every non-digit and parses the rest: "7%" is 7,
// "bogus" is 0. Numeric JSON values are truncated. The result is not clamped.
func ParseStatPercentage(v any) int {
	switch t := v.(type) {
	case string:
		n, err := strconv.Atoi(Digits(t))
		if err != nil {
			return 0
		}
		return n
	default:
		n, _ := IntFromAny(t)
		return n
	}
}

func ClampPercent(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SynthesizeHref returns href when set. Otherwise it derives one from the
// display text: mailto: for email, tel: with digits only for phone, and the
// text itself for anything else.
func SynthesizeHref(text, linkType, href string) string {
	if h := strings.TrimSpace(href); h != "" {
		return h
	}
	text = strings.TrimSpace(text)
	switch strings.ToLower(strings.TrimSpace(linkType)) {
	case "email", "mail", "mailto":
		return "mailto:" + strings.TrimPrefix(text, "mailto:")
	case "phone", "tel", "telephone":
		return "tel:" + Digits(text)
	default:
		return text
	}
}

type Button struct {
	Text   string
	Href   string
	Type   string
	Style  string
	NewTab bool
}

// ButtonFrom reads the first alias holding a button object. ok is false when
// none has text or a link.
func ButtonFrom(r Raw, aliases ...string) (Button, bool) {
	for _, a := range aliases {
		if b, ok := ParseButton(r.Map(a)); ok {
			return b, true
		}
	}
	return Button{}, false
}

// ParseButton reads one button object.
func ParseButton(m Raw) (Button, bool) {
	if m == nil {
		return Button{}, false
	}
	b := Button{
		Text:   m.String("text", "label", "title"),
		Type:   m.String("type", "linkType"),
		Style:  m.String("style", "variant", "appearance"),
		NewTab: m.Bool(false, "newTab", "openInNewTab"),
	}
	b.Href = SynthesizeHref(b.Text, b.Type, linkHref(m))
	if b.Text == "" && b.Href == "" {
		return Button{}, false
	}
	if b.Text == "" {
		b.Text = b.Href
	}
	return b, true
}

// linkHref understands plain href strings and Payload link groups, where
// internal links reference a document by slug.
func linkHref(m Raw) string {
	if s := m.String("href", "url"); s != "" {
		return s
	}
	link := m.Map("link")
	if link == nil {
		if s := m.String("link"); s != "" {
			return s
		}
		return ""
	}
	if s := link.String("url", "href"); s != "" {
		return s
	}
	if slug := link.String("reference.value.slug", "reference.slug"); slug != "" {
		if slug == "home" {
			return "/"
		}
		return "/" + strings.TrimPrefix(slug, "/")
	}
	return ""
}

type VideoSettings struct {
	Autoplay    bool
	Muted       bool
	Loop        bool
	PauseOnExit bool
	Controls    bool
}

// ShowcaseVideoDefaults: embedded showcase video always autoplays muted on loop.
var ShowcaseVideoDefaults = VideoSettings{Autoplay: true, Muted: true, Loop: true, PauseOnExit: true}

// VideoSettingsFrom reads the settings container (settings, videoSettings,
// playback) when it is an object, falling back field by field to def.
func VideoSettingsFrom(r Raw, def VideoSettings) VideoSettings {
	s := r.Map("settings", "videoSettings", "playback")
	if s == nil {
		return def
	}
	return VideoSettings{
		Autoplay:    s.Bool(def.Autoplay, "autoplay", "autoPlay"),
		Muted:       s.Bool(def.Muted, "muted", "mute"),
		Loop:        s.Bool(def.Loop, "loop"),
		PauseOnExit: s.Bool(def.PauseOnExit, "pauseOnExit", "pauseOffscreen"),
		Controls:    s.Bool(def.Controls, "controls", "showControls"),
	}
}
