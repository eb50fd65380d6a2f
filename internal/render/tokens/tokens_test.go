package tokens

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveBackgroundTheme_CasingVariants(t *testing.T) {
	cases := []struct {
		in    string
		class string
		theme Theme
	}{
		{"white", "surface-light", ThemeLight},
		{"White", "surface-light", ThemeLight},
		{"light-gray", "surface-tertiary", ThemeLight},
		{"Light Gray", "surface-tertiary", ThemeLight},
		{"light_grey", "surface-tertiary", ThemeLight},
		{"BLACK", "surface-dark", ThemeDark},
		{"Dark Gray", "surface-dark-secondary", ThemeDark},
		{"navy", "surface-brand", ThemeDark},
		{"transparent", "surface-transparent", ThemeLight},
		{"", "surface-light", ThemeLight},
		{"chartreuse", "surface-light", ThemeLight},
	}
	for _, tc := range cases {
		got := ResolveBackgroundTheme(tc.in)
		if got.StyleClass != tc.class || got.Theme != tc.theme {
			t.Fatalf("in=%q got=%+v", tc.in, got)
		}
	}
}

func TestResolveSpacing(t *testing.T) {
	got := ResolveSpacing("Section", "tight")
	want := SpacingStyles{
		Top:    Style{Class: "pt-section", Value: "8rem"},
		Bottom: Style{Class: "pb-tight", Value: "0.5rem"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("spacing mismatch (-want +got):\n%s", diff)
	}

	for _, in := range []string{"", "none", "huge", "  "} {
		s := ResolveSpacing(in, in)
		if !s.Top.IsZero() || !s.Bottom.IsZero() {
			t.Fatalf("in=%q expected no spacing, got=%+v", in, s)
		}
	}
}

func TestResolveAlignment(t *testing.T) {
	for in, want := range map[string]string{"Center": "text-center", "right": "text-right", "": "text-left", "justify": "text-left"} {
		if got := ResolveAlignment(in); got != want {
			t.Fatalf("in=%q got=%q", in, got)
		}
	}
}
