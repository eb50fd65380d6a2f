// Package tokens maps CMS design tokens (background names, spacing sizes,
// alignment) onto the site's style classes. Every resolver is total: unknown
// input falls back to a fixed default instead of failing.
package tokens

import (
	"strings"

	"golang.org/x/text/cases"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Background struct {
	Token      string
	StyleClass string
	Theme      Theme
}

// IsTransparent reports whether the block lets the previous block show through.
func (b Background) IsTransparent() bool {
	return b.StyleClass == classTransparent
}

const (
	classLight       = "surface-light"
	classTransparent = "surface-transparent"
)

type surface struct {
	class string
	theme Theme
}

// surfaces is the single colour table for every block kind.
var surfaces = map[string]surface{
	"white":       {classLight, ThemeLight},
	"off-white":   {"surface-secondary", ThemeLight},
	"cream":       {"surface-secondary", ThemeLight},
	"light-gray":  {"surface-tertiary", ThemeLight},
	"gray":        {"surface-tertiary", ThemeLight},
	"black":       {"surface-dark", ThemeDark},
	"dark-gray":   {"surface-dark-secondary", ThemeDark},
	"charcoal":    {"surface-dark-secondary", ThemeDark},
	"brand":       {"surface-brand", ThemeDark},
	"primary":     {"surface-brand", ThemeDark},
	"navy":        {"surface-brand", ThemeDark},
	"transparent": {classTransparent, ThemeLight},
	"none":        {classTransparent, ThemeLight},
}

var folder = cases.Fold()

// NormalizeToken folds "Light Gray", "light_grey" and "LIGHT-GRAY" to "light-gray".
func NormalizeToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = folder.String(s)
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	return strings.ReplaceAll(s, "grey", "gray")
}

func ResolveBackgroundTheme(token string) Background {
	norm := NormalizeToken(token)
	if s, ok := surfaces[norm]; ok {
		return Background{Token: norm, StyleClass: s.class, Theme: s.theme}
	}
	return Background{Token: norm, StyleClass: classLight, Theme: ThemeLight}
}

type Spacing string

const (
	SpacingNone      Spacing = "none"
	SpacingTight     Spacing = "tight"
	SpacingCompact   Spacing = "compact"
	SpacingElement   Spacing = "element"
	SpacingComponent Spacing = "component"
	SpacingSection   Spacing = "section"
)

var spacingValues = map[Spacing]string{
	SpacingTight:     "0.5rem",
	SpacingCompact:   "1rem",
	SpacingElement:   "2rem",
	SpacingComponent: "4rem",
	SpacingSection:   "8rem",
}

// Style is one side of a block's vertical spacing. The zero value means none.
type Style struct {
	Class string
	Value string
}

func (s Style) IsZero() bool { return s.Class == "" }

type SpacingStyles struct {
	Top    Style
	Bottom Style
}

func ParseSpacing(s string) Spacing {
	sp := Spacing(NormalizeToken(s))
	if _, ok := spacingValues[sp]; ok {
		return sp
	}
	return SpacingNone
}

func ResolveSpacing(top, bottom string) SpacingStyles {
	return SpacingStyles{
		Top:    spacingStyle("pt", ParseSpacing(top)),
		Bottom: spacingStyle("pb", ParseSpacing(bottom)),
	}
}

func spacingStyle(prefix string, sp Spacing) Style {
	v, ok := spacingValues[sp]
	if !ok {
		return Style{}
	}
	return Style{Class: prefix + "-" + string(sp), Value: v}
}

// Classes returns the non-empty spacing classes in top, bottom order.
func (s SpacingStyles) Classes() []string {
	var out []string
	if !s.Top.IsZero() {
		out = append(out, s.Top.Class)
	}
	if !s.Bottom.IsZero() {
		out = append(out, s.Bottom.Class)
	}
	return out
}

func ResolveAlignment(s string) string {
	switch NormalizeToken(s) {
	case "center", "centre", "middle":
		return "text-center"
	case "right", "end":
		return "text-right"
	default:
		return "text-left"
	}
}
