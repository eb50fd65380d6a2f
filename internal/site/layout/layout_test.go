package layout

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/render/blocks"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/tokens"
	"github.com/yungbote/blockpage/internal/site"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(SiteInfo{Name: "Acme Studio", BaseURL: "https://acme.test/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestRenderPage_ShellAroundBlocks(t *testing.T) {
	r := newRenderer(t)
	p := &site.Page{
		ID:       "1",
		Slug:     "about",
		Title:    "About us",
		Kind:     site.KindPage,
		NavTheme: tokens.ThemeDark,
		Nav:      &cms.Navigation{Items: []cms.NavLink{{Label: "Work", Href: "/case-studies"}}},
		Footer:   &cms.Footer{Phone: "+1 (555) 010-0100", Copyright: "All rights reserved."},
		Blocks: []blocks.Rendered{
			{Key: "b1", Node: node.El("section", node.Text("Hello <world>")).Class("hero")},
		},
	}
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, p); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<title>About us | Acme Studio</title>`,
		`<link rel="canonical" href="https://acme.test/about">`,
		`data-nav-theme="dark"`,
		`<section class="hero">Hello &lt;world&gt;</section>`,
		`href="/case-studies"`,
		`href="tel:15550100100"`,
		`&copy; 2026 Acme Studio. All rights reserved.`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderPage_NoticeAndGallery(t *testing.T) {
	r := newRenderer(t)
	p := &site.Page{
		Slug:    "acme",
		Kind:    site.KindCaseStudy,
		Notice:  "No layout blocks found for this case study (ID: 9).",
		Gallery: []site.Card{{Title: "Beta", Href: "/case-studies/beta", ImageURL: "https://img/b.png", Categories: []string{"Web", "Brand"}}},
	}
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, p); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"(ID: 9)", `href="/case-studies/beta"`, "Web, Brand", `href="https://acme.test/case-studies/acme"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q", want)
		}
	}
}

func TestRenderListing_MarksActiveCategory(t *testing.T) {
	r := newRenderer(t)
	web := cms.Category{Slug: "web", Title: "Web"}
	l := &site.Listing{
		Title:      "Web",
		Category:   &web,
		Categories: []cms.Category{web, {Slug: "print", Title: "Print"}},
	}
	var buf bytes.Buffer
	if err := r.RenderListing(&buf, l); err != nil {
		t.Fatalf("RenderListing: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `href="/case-studies/category/web" aria-current="page"`) {
		t.Fatalf("active category not marked:\n%s", out)
	}
	if strings.Contains(out, `href="/case-studies/category/print" aria-current`) {
		t.Fatalf("inactive category marked")
	}
	if !strings.Contains(out, "No case studies yet.") {
		t.Fatalf("expected empty state")
	}
}

func TestRenderError_NotFound(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	if err := r.RenderError(&buf, http.StatusNotFound, "", nil, nil); err != nil {
		t.Fatalf("RenderError: %v", err)
	}
	if !strings.Contains(buf.String(), "Page not found") || !strings.Contains(buf.String(), "Not Found") {
		t.Fatalf("out=%s", buf.String())
	}
}
