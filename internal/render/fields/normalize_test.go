package fields

import "testing"

func TestSplitColors_AliasOrder(t *testing.T) {
	r := Raw{"topBg": "white", "topBackgroundColor": "black", "splitBackgroundTop": "  "}
	if got := SplitTopColor(r); got != "white" {
		t.Fatalf("top=%q", got)
	}
	r["splitBackgroundTop"] = "navy"
	if got := SplitTopColor(r); got != "navy" {
		t.Fatalf("top=%q", got)
	}
	if got := SplitTopColor(Raw{}); got != "light-gray" {
		t.Fatalf("default top=%q", got)
	}
	if got := SplitBottomColor(Raw{"bottomBackgroundColor": "cream"}); got != "cream" {
		t.Fatalf("bottom=%q", got)
	}
	if got := SplitBottomColor(nil); got != "white" {
		t.Fatalf("default bottom=%q", got)
	}
}

func TestSplitRatio(t *testing.T) {
	cases := []struct {
		in   Raw
		def  int
		want int
	}{
		{Raw{}, 30, 30},
		{Raw{"splitRatio": float64(40)}, 30, 40},
		{Raw{"splitRatio": "65%"}, 30, 65},
		{Raw{"splitPercentage": 250.0}, 50, 100},
		{Raw{"split": "n/a"}, 60, 60},
		{Raw{"splitRatio": -5.0}, 30, 0},
	}
	for _, tc := range cases {
		if got := SplitRatio(tc.in, tc.def); got != tc.want {
			t.Fatalf("in=%v got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestParseStatPercentage(t *testing.T) {
	cases := map[any]int{"7%": 7, "bogus": 0, "120%": 120, "": 0, float64(42): 42, nil: 0}
	for in, want := range cases {
		if got := ParseStatPercentage(in); got != want {
			t.Fatalf("in=%v got=%d want=%d", in, got, want)
		}
	}
	if got := ClampPercent(ParseStatPercentage("120%")); got != 100 {
		t.Fatalf("clamped=%d", got)
	}
}

func TestSynthesizeHref(t *testing.T) {
	cases := []struct{ text, typ, href, want string }{
		{"hello@x.com", "email", "", "mailto:hello@x.com"},
		{"+1 (555) 010-0200", "phone", "", "tel:15550100200"},
		{"/contact", "", "", "/contact"},
		{"Talk to us", "email", "https://x.com/contact", "https://x.com/contact"},
	}
	for _, tc := range cases {
		if got := SynthesizeHref(tc.text, tc.typ, tc.href); got != tc.want {
			t.Fatalf("in=%+v got=%q", tc, got)
		}
	}
}

func TestButtonFrom(t *testing.T) {
	r := Raw{
		"primaryCTA": map[string]any{"text": "hello@x.com", "type": "email"},
		"secondaryButton": map[string]any{
			"label": "Read more",
			"link":  map[string]any{"type": "reference", "reference": map[string]any{"value": map[string]any{"slug": "about"}}},
		},
	}
	b, ok := ButtonFrom(r, "primaryCTA", "primaryButton")
	if !ok || b.Href != "mailto:hello@x.com" {
		t.Fatalf("primary=%+v ok=%v", b, ok)
	}
	b, ok = ButtonFrom(r, "secondaryCTA", "secondaryButton")
	if !ok || b.Href != "/about" || b.Text != "Read more" {
		t.Fatalf("secondary=%+v ok=%v", b, ok)
	}
	if _, ok := ButtonFrom(r, "missing"); ok {
		t.Fatalf("expected no button")
	}
}

func TestVideoSettingsFrom(t *testing.T) {
	got := VideoSettingsFrom(Raw{}, ShowcaseVideoDefaults)
	if !got.Autoplay || !got.Muted || !got.Loop || !got.PauseOnExit {
		t.Fatalf("defaults=%+v", got)
	}
	got = VideoSettingsFrom(Raw{"videoSettings": map[string]any{"muted": false, "loop": "false"}}, ShowcaseVideoDefaults)
	if got.Muted || got.Loop || !got.Autoplay {
		t.Fatalf("overrides=%+v", got)
	}
	got = VideoSettingsFrom(Raw{"settings": "autoplay"}, ShowcaseVideoDefaults)
	if got != ShowcaseVideoDefaults {
		t.Fatalf("malformed container should fall back, got=%+v", got)
	}
}

func TestRawDottedPathAndSlice(t *testing.T) {
	r := Raw{
		"spacing": map[string]any{"top": "section"},
		"items":   []any{map[string]any{"title": "a"}, "junk", map[string]any{"title": "b"}},
	}
	if got := SpacingTop(r); got != "section" {
		t.Fatalf("spacing.top=%q", got)
	}
	items := r.Slice("items")
	if len(items) != 2 || items[1].String("title") != "b" {
		t.Fatalf("items=%v", items)
	}
}
