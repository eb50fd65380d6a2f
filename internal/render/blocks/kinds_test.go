package blocks

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/node"
)

func TestCTA_EmailHrefSynthesized(t *testing.T) {
	got := renderOne(t, map[string]any{
		"blockType":  "cta",
		"primaryCTA": map[string]any{"text": "hello@x.com", "type": "email"},
	})
	a := got.Node.Find(func(n *node.Node) bool { return n.Tag == "a" })
	if a == nil {
		t.Fatalf("no link rendered: %s", node.String(got.Node))
	}
	if href, _ := a.Get("href"); href != "mailto:hello@x.com" {
		t.Fatalf("href=%q", href)
	}
}

func TestCTA_WidthModesUseDifferentWrappers(t *testing.T) {
	r := newTestRenderer()
	full := renderOne(t, map[string]any{"blockType": "cta", "backgroundColor": "navy"})
	if !node.HasClass("surface-brand")(full.Node) || full.Node.Find(node.HasClass("cta-panel")) != nil {
		t.Fatalf("full mode should colour the section itself: %s", node.String(full.Node))
	}

	list := ParseMaps([]map[string]any{
		{"blockType": "cta", "widthMode": "container", "backgroundColor": "navy", "spacingTop": "section"},
		{"blockType": "bodyText", "backgroundColor": "light-gray"},
	})
	out := r.RenderBlocks(list, Context{})
	sec := out[0].Node
	if !node.HasClass("surface-tertiary")(sec) || !node.HasClass("pt-section")(sec) {
		t.Fatalf("outer section should take the next block's background: %s", node.String(sec))
	}
	panel := sec.Find(node.HasClass("cta-panel"))
	if panel == nil || !node.HasClass("surface-brand")(panel) {
		t.Fatalf("missing inset panel: %s", node.String(sec))
	}
	if out[0].NavTheme != "light" {
		t.Fatalf("nav=%q", out[0].NavTheme)
	}

	last := r.RenderBlocks(ParseMaps([]map[string]any{{"blockType": "cta", "widthMode": "container"}}), Context{})
	if !node.HasClass("surface-light")(last[0].Node) {
		t.Fatalf("outer should default to white: %s", node.String(last[0].Node))
	}
}

func bands(t *testing.T, n *node.Node) (top, bottom *node.Node) {
	t.Helper()
	top = n.Find(node.HasClass("split-band-top"))
	bottom = n.Find(node.HasClass("split-band-bottom"))
	if top == nil || bottom == nil {
		t.Fatalf("split bands missing: %s", node.String(n))
	}
	return top, bottom
}

func TestSingleImage_SplitBands(t *testing.T) {
	got := renderOne(t, map[string]any{
		"blockType":      "singleImage",
		"backgroundType": "split",
		"topBg":          "white",
		"bottomBg":       "light-gray",
		"splitRatio":     float64(40),
		"image":          map[string]any{"url": "/media/a.jpg"},
	})
	top, bottom := bands(t, got.Node)
	if s, _ := top.Get("style"); !strings.Contains(s, "height: 60%") || !node.HasClass("surface-light")(top) {
		t.Fatalf("top band=%+v", top.Attrs)
	}
	if s, _ := bottom.Get("style"); !strings.Contains(s, "height: 40%") || !node.HasClass("surface-tertiary")(bottom) {
		t.Fatalf("bottom band=%+v", bottom.Attrs)
	}
}

func TestSplitDefaultsArePerKind(t *testing.T) {
	cases := []struct {
		raw  map[string]any
		want string
	}{
		{map[string]any{"blockType": "splitBackgroundImage"}, "30"},
		{map[string]any{"blockType": "singleImage", "backgroundType": "split"}, "30"},
		{map[string]any{"blockType": "dualImage", "backgroundType": "Split"}, "50"},
		{map[string]any{"blockType": "imageShowcase", "layout": "dual"}, "60"},
	}
	for _, tc := range cases {
		got := renderOne(t, tc.raw)
		bg := got.Node.Find(node.HasClass("split-background"))
		if bg == nil {
			t.Fatalf("%v: no split background", tc.raw)
		}
		if v, _ := bg.Get("data-split-ratio"); v != tc.want {
			t.Fatalf("%v: ratio=%q want=%q", tc.raw, v, tc.want)
		}
	}
	plain := renderOne(t, map[string]any{"blockType": "dualImage"})
	if plain.Node.Find(node.HasClass("split-background")) != nil {
		t.Fatalf("dualImage without split should have no bands")
	}
}

func TestSplitGeometrySumsTo100(t *testing.T) {
	for r := 0; r <= 100; r++ {
		s := SplitFor(fields.Raw{"splitRatio": float64(r)}, 30)
		if s.TopHeight+s.BottomHeight != 100 || s.BottomHeight != r {
			t.Fatalf("ratio=%d top=%d bottom=%d", r, s.TopHeight, s.BottomHeight)
		}
	}
}

func TestStatsCharts_DisplayUnclampedRingClamped(t *testing.T) {
	st := ParseStat(fields.Raw{"percentage": "120%"})
	if st.Display != 120 || st.Ring != 100 {
		t.Fatalf("stat=%+v", st)
	}
	if ParseStat(fields.Raw{"percentage": "bogus"}).Display != 0 {
		t.Fatalf("bogus should parse as 0")
	}
	if RingDashOffset(100) != 0 {
		t.Fatalf("full ring offset=%v", RingDashOffset(100))
	}
	if math.Abs(RingDashOffset(0)-2*math.Pi*45) > 1e-9 {
		t.Fatalf("empty ring offset=%v", RingDashOffset(0))
	}

	got := renderOne(t, map[string]any{
		"blockType": "statsCharts",
		"stats":     []any{map[string]any{"percentage": "120%", "label": "Growth"}},
	})
	html := node.String(got.Node)
	if !strings.Contains(html, ">120%<") || !strings.Contains(html, `data-ring-value="100"`) {
		t.Fatalf("html=%s", html)
	}
}

func TestBentoGrid_PatternAndPlaceholder(t *testing.T) {
	got := renderOne(t, map[string]any{
		"blockType": "bentoGrid",
		"items": []any{
			map[string]any{"caseStudy": map[string]any{"title": "Acme", "slug": "acme", "featuredImage": map[string]any{"url": "/a.jpg"}}},
			map[string]any{"caseStudy": map[string]any{"title": "Globex"}},
			map[string]any{"title": "Initech", "resultsVideo": map[string]any{"url": "/v.mp4"}},
			map[string]any{"caseStudy": float64(9)},
		},
	})
	cells := got.Node.FindAll(node.HasClass("bento-item"))
	if len(cells) != 4 {
		t.Fatalf("cells=%d", len(cells))
	}
	wantSize := []string{"bento-large", "bento-small", "bento-small", "bento-large"}
	for i, c := range cells {
		if !node.HasClass(wantSize[i])(c) {
			t.Fatalf("cell %d classes=%+v", i, c.Attrs)
		}
	}
	if s, _ := cells[0].Get("style"); s != "grid-column: span 2" {
		t.Fatalf("large span=%q", s)
	}
	ph := cells[1].Find(node.HasClass("bento-placeholder"))
	if ph == nil || !strings.Contains(ph.TextContent(), "Globex") {
		t.Fatalf("placeholder missing: %s", node.String(cells[1]))
	}
	if cells[2].Find(func(n *node.Node) bool { return n.Tag == "video" }) == nil {
		t.Fatalf("results video missing")
	}
	if !strings.Contains(cells[3].TextContent(), "Case study #9") {
		t.Fatalf("bare relation title: %s", node.String(cells[3]))
	}
}

func TestFAQSection_AnchorsAndStructuredData(t *testing.T) {
	got := renderOne(t, map[string]any{
		"blockType": "faqSection",
		"faqs": []any{
			map[string]any{"question": "What is <it>?", "answer": "A thing"},
			map[string]any{"question": "What is <it>?", "answer": "Still a thing"},
			map[string]any{"answer": "orphan"},
		},
	})
	items := got.Node.FindAll(func(n *node.Node) bool { return n.Tag == "details" })
	if len(items) != 2 {
		t.Fatalf("items=%d", len(items))
	}
	id0, _ := items[0].Get("id")
	id1, _ := items[1].Get("id")
	if id0 != "what-is-it" || id1 != "what-is-it-2" {
		t.Fatalf("ids=%q,%q", id0, id1)
	}

	script := got.Node.Find(func(n *node.Node) bool { return n.Tag == "script" })
	if script == nil {
		t.Fatalf("no JSON-LD")
	}
	var page faqPage
	if err := json.Unmarshal([]byte(script.TextContent()), &page); err != nil {
		t.Fatalf("json-ld: %v", err)
	}
	if page.Type != "FAQPage" || len(page.MainEntity) != 2 || page.MainEntity[1].AcceptedAnswer.Text != "Still a thing" {
		t.Fatalf("page=%+v", page)
	}
	if strings.Contains(node.String(script), "<it>") {
		t.Fatalf("script body not escaped")
	}
}

func TestEmbedURL(t *testing.T) {
	s := fields.VideoSettings{Autoplay: true, Muted: true}
	cases := []struct{ in, want string }{
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube-nocookie.com/embed/abc123?autoplay=1&controls=0&mute=1"},
		{"https://youtu.be/abc123", "https://www.youtube-nocookie.com/embed/abc123?autoplay=1&controls=0&mute=1"},
		{"https://vimeo.com/channels/staff/76979871", "https://player.vimeo.com/video/76979871?autoplay=1&muted=1"},
	}
	for _, tc := range cases {
		got, ok := EmbedURL(tc.in, s)
		if !ok || got != tc.want {
			t.Fatalf("in=%q got=%q ok=%v", tc.in, got, ok)
		}
	}
	if _, ok := EmbedURL("https://cdn.example.com/v.mp4", s); ok {
		t.Fatalf("plain file should not embed")
	}
}

func TestImageShowcaseVideoDefaultsToAutoplay(t *testing.T) {
	got := renderOne(t, map[string]any{"blockType": "imageShowcase", "video": map[string]any{"url": "/media/loop.mp4"}})
	v := got.Node.Find(func(n *node.Node) bool { return n.Tag == "video" })
	if v == nil {
		t.Fatalf("no video: %s", node.String(got.Node))
	}
	for _, attr := range []string{"autoplay", "muted", "loop", "data-pause-on-exit"} {
		if _, ok := v.Get(attr); !ok {
			t.Fatalf("missing %s: %+v", attr, v.Attrs)
		}
	}
}

func TestHero_VideoOnlyHasNoPlaceholderPoster(t *testing.T) {
	got := renderOne(t, map[string]any{"blockType": "hero", "heading": "Hi", "backgroundVideo": map[string]any{"url": "/media/loop.mp4"}})
	v := got.Node.Find(func(n *node.Node) bool { return n.Tag == "video" })
	if v == nil {
		t.Fatalf("no video: %s", node.String(got.Node))
	}
	if poster, ok := v.Get("poster"); ok {
		t.Fatalf("poster=%q", poster)
	}

	got = renderOne(t, map[string]any{
		"blockType":       "hero",
		"backgroundVideo": map[string]any{"url": "/media/loop.mp4"},
		"backgroundImage": map[string]any{"url": "/media/still.jpg"},
	})
	v = got.Node.Find(func(n *node.Node) bool { return n.Tag == "video" })
	if poster, _ := v.Get("poster"); poster != "https://cms.example.com/media/still.jpg" {
		t.Fatalf("poster=%q", poster)
	}
}
