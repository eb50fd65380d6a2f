package blocks

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/blockpage/internal/platform/logger"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/tokens"
)

func newTestRenderer() *Renderer {
	return NewRenderer(media.NewResolver("https://cms.example.com", "", logger.Nop()), logger.Nop())
}

func renderOne(t *testing.T, raw map[string]any) Rendered {
	t.Helper()
	out := newTestRenderer().RenderBlocks([]Block{Parse(raw, 0)}, Context{})
	if len(out) != 1 {
		t.Fatalf("rendered %d blocks", len(out))
	}
	return out[0]
}

func isDiagnostic(n *node.Node) bool {
	return n.Find(node.HasClass("block-diagnostic")) != nil
}

func TestEveryKindHasAHandler(t *testing.T) {
	for _, k := range AllKinds() {
		if ParseKind(string(k)) != k {
			t.Fatalf("ParseKind(%q) did not round trip", k)
		}
		got := renderOne(t, map[string]any{"blockType": string(k)})
		if isDiagnostic(got.Node) {
			t.Fatalf("kind %q rendered a diagnostic:\n%s", k, node.String(got.Node))
		}
		if got.NavTheme == "" {
			t.Fatalf("kind %q has no nav theme", k)
		}
	}
}

// junk puts wrongly-shaped values under the aliases renderers read.
func junk(kind Kind) map[string]any {
	m := map[string]any{"blockType": string(kind)}
	for _, k := range []string{
		"heading", "title", "content", "body", "description", "image", "media", "backgroundImage",
		"items", "stats", "slides", "faqs", "logos", "services", "awards", "posts", "painPoints",
		"primaryCTA", "settings", "videoSettings", "splitRatio", "leftImage", "rightImage", "images",
		"video", "videoUrl", "widthMode", "layout", "columns", "client",
	} {
		m[k] = []any{nil, 3.5, "x", map[string]any{"root": 7}}
	}
	m["backgroundColor"] = 12.0
	m["spacingTop"] = map[string]any{}
	return m
}

func TestMalformedFieldsNeverFail(t *testing.T) {
	for _, k := range AllKinds() {
		got := renderOne(t, junk(k))
		if isDiagnostic(got.Node) {
			t.Fatalf("kind %q failed on malformed input:\n%s", k, node.String(got.Node))
		}
		_ = node.String(got.Node)
	}
}

func TestUnknownKindRendersDiagnostic(t *testing.T) {
	for _, typ := range []string{"megaSlider", "", "HERO2"} {
		got := renderOne(t, map[string]any{"blockType": typ, "id": "abc", "foo": "bar"})
		html := node.String(got.Node)
		if !strings.Contains(html, "Unknown block type: "+typ) {
			t.Fatalf("type=%q html=%s", typ, html)
		}
		if !strings.Contains(html, "&#34;foo&#34;: &#34;bar&#34;") {
			t.Fatalf("raw block not dumped: %s", html)
		}
		if got.Key != "abc" {
			t.Fatalf("key=%q", got.Key)
		}
	}
}

func TestParseKindFolding(t *testing.T) {
	cases := map[string]Kind{
		"stats-cards":   KindStatsCards,
		"StatsCharts":   KindStatsCharts,
		"company-intro": KindCompanyIntro,
		"FAQ":           KindFAQSection,
		"nope":          KindUnknown,
	}
	for in, want := range cases {
		if got := ParseKind(in); got != want {
			t.Fatalf("in=%q got=%q", in, got)
		}
	}
	if KindScrollHijackCarousel.Class() != "block-scroll-hijack-carousel" {
		t.Fatalf("class=%q", KindScrollHijackCarousel.Class())
	}
}

func sampleLayout(t *testing.T) []any {
	t.Helper()
	const raw = `[
	  {"blockType":"hero","id":"h1","heading":"Hi","backgroundImage":{"url":"/media/h.jpg"}},
	  {"blockType":"statsCharts","stats":[{"percentage":"120%","label":"Growth"},{"percentage":"7%"}]},
	  {"blockType":"faqSection","faqs":[{"question":"Why?","answer":"Because"},{"question":"Why?","answer":"Again"}]},
	  {"blockType":"bentoGrid","items":[{"title":"A"},{"title":"B","image":{"url":"/b.png"}},{"title":"C"},{"title":"D"}]},
	  {"blockType":"cta","widthMode":"container","heading":"Talk","primaryCTA":{"text":"hello@x.com","type":"email"}},
	  {"blockType":"bodyText","backgroundColor":"Light Gray","content":{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"x","format":1}]}]}}},
	  {"blockType":"mystery","payload":{"a":[1,2,3]}}
	]`
	var out []any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestRenderBlocks_IdempotentAndDoesNotMutate(t *testing.T) {
	layout := sampleLayout(t)
	pristine := sampleLayout(t)
	r := newTestRenderer()

	first := r.RenderBlocks(ParseList(layout), Context{})
	second := r.RenderBlocks(ParseList(layout), Context{})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("renders differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(pristine, layout); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
	if node.String(first[0].Node) != node.String(second[0].Node) {
		t.Fatalf("html differs")
	}
}

func TestNavThemeHints(t *testing.T) {
	r := newTestRenderer()
	list := ParseMaps([]map[string]any{
		{"blockType": "hero", "backgroundImage": map[string]any{"url": "/h.jpg"}},
		{"blockType": "bodyText", "backgroundColor": "transparent"},
		{"blockType": "bodyText", "backgroundColor": "White"},
		{"blockType": "statsCards", "backgroundColor": "navy"},
	})
	got := r.RenderBlocks(list, Context{NavTheme: tokens.ThemeLight})
	want := []tokens.Theme{tokens.ThemeDark, tokens.ThemeDark, tokens.ThemeLight, tokens.ThemeDark}
	for i := range want {
		if got[i].NavTheme != want[i] {
			t.Fatalf("block %d nav=%q want=%q", i, got[i].NavTheme, want[i])
		}
		if v, _ := got[i].Node.Get("data-nav-theme"); v != string(want[i]) {
			t.Fatalf("block %d data-nav-theme=%q", i, v)
		}
	}
}

func TestRenderBlocks_KeysFallBackToIndex(t *testing.T) {
	got := newTestRenderer().RenderBlocks(ParseMaps([]map[string]any{
		{"blockType": "bodyText"},
		{"blockType": "bodyText", "id": "named"},
	}), Context{})
	if got[0].Key != "block-0" || got[1].Key != "named" {
		t.Fatalf("keys=%q,%q", got[0].Key, got[1].Key)
	}
}

func TestParseList_RepeatedBlockNamesKeepDistinctKeys(t *testing.T) {
	got := ParseList([]any{
		map[string]any{"blockType": "bodyText", "blockName": "Intro"},
		map[string]any{"blockType": "bodyText", "blockName": "Intro"},
		map[string]any{"blockType": "bodyText", "blockName": "Intro", "id": "x1"},
	})
	keys := []string{got[0].Key, got[1].Key, got[2].Key}
	if diff := cmp.Diff([]string{"block-0", "block-1", "x1"}, keys); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
}
