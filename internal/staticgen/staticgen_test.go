package staticgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/site"
	"github.com/yungbote/blockpage/internal/site/layout"
)

type fakeLister struct {
	pages   []cms.Page
	studies []cms.CaseStudy
	cats    []cms.Category
	catErr  error
}

func (f *fakeLister) ListPages(context.Context, cms.ListOptions) ([]cms.Page, error) {
	return f.pages, nil
}

func (f *fakeLister) ListCaseStudies(context.Context, cms.ListOptions) ([]cms.CaseStudy, error) {
	return f.studies, nil
}

func (f *fakeLister) ListCategories(context.Context) ([]cms.Category, error) {
	return f.cats, f.catErr
}

type fakeAssembler struct {
	missing map[string]bool
	broken  map[string]bool
}

func (f *fakeAssembler) AssemblePage(_ context.Context, slug string) (*site.Page, error) {
	if f.missing[slug] {
		return nil, fmt.Errorf("%w: %s", site.ErrNotFound, slug)
	}
	if f.broken[slug] {
		return nil, errors.New("upstream down")
	}
	return &site.Page{ID: cms.ID(slug), Slug: slug, Title: strings.ToUpper(slug), Kind: site.KindPage}, nil
}

func (f *fakeAssembler) AssembleCaseStudy(_ context.Context, slug string) (*site.Page, error) {
	return &site.Page{ID: cms.ID(slug), Slug: slug, Title: slug, Kind: site.KindCaseStudy, Degraded: []string{"gallery"}}, nil
}

func (f *fakeAssembler) AssembleCaseStudyIndex(context.Context) (*site.Listing, error) {
	return &site.Listing{Title: "Work"}, nil
}

func (f *fakeAssembler) AssembleCategory(_ context.Context, slug string) (*site.Listing, error) {
	return &site.Listing{Title: slug, Slug: slug, Category: &cms.Category{Slug: slug, Title: cms.Text(slug)}}, nil
}

func newBuilder(t *testing.T, l Lister, a Assembler, baseURL string) *Builder {
	t.Helper()
	lay, err := layout.New(layout.SiteInfo{Name: "Studio", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	b, err := New(Options{CMS: l, Assembler: a, Layout: lay, BaseURL: baseURL, Concurrency: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func page(slug, status string) cms.Page {
	var p cms.Page
	p.Slug = slug
	p.Status = cms.Status(status)
	p.UpdatedAt = "2024-03-05T10:00:00.000Z"
	return p
}

func caseStudy(slug string) cms.CaseStudy {
	var cs cms.CaseStudy
	cs.Slug = slug
	return cs
}

func TestBuild_WritesPagesListingsAndSitemap(t *testing.T) {
	out := t.TempDir()
	l := &fakeLister{
		pages: []cms.Page{page("home", "published"), page("about", ""), page("secret", "draft")},
		studies: []cms.CaseStudy{
			caseStudy("client-10"), caseStudy("client-2"), caseStudy(""),
		},
		cats: []cms.Category{{Slug: "web", Title: "Web"}},
	}
	b := newBuilder(t, l, &fakeAssembler{}, "https://studio.test")

	rep, err := b.Build(context.Background(), out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"/",
		"/about",
		"/case-studies",
		"/case-studies/category/web",
		"/case-studies/client-2",
		"/case-studies/client-10",
	}
	if diff := cmp.Diff(want, rep.Written); diff != "" {
		t.Fatalf("written mismatch (-want +got):\n%s", diff)
	}
	if _, ok := rep.Degraded["/case-studies/client-2"]; !ok {
		t.Fatalf("expected degraded entry, got=%v", rep.Degraded)
	}

	for _, rel := range []string{
		"index.html",
		"about/index.html",
		"case-studies/index.html",
		"case-studies/category/web/index.html",
		"case-studies/client-2/index.html",
		"404.html",
	} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "secret", "index.html")); err == nil {
		t.Fatalf("draft page should not be written")
	}

	raw, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	if err != nil {
		t.Fatalf("sitemap: %v", err)
	}
	sm := string(raw)
	if !strings.Contains(sm, "<loc>https://studio.test/about</loc>") || !strings.Contains(sm, "<lastmod>2024-03-05</lastmod>") {
		t.Fatalf("sitemap=%s", sm)
	}
	if strings.Index(sm, "client-2<") > strings.Index(sm, "client-10<") {
		t.Fatalf("expected natural order in sitemap: %s", sm)
	}
}

func TestBuild_SkipsNotFoundAndReportsFailures(t *testing.T) {
	out := t.TempDir()
	l := &fakeLister{
		pages:  []cms.Page{page("gone", ""), page("flaky", ""), page("ok", "")},
		catErr: errors.New("categories down"),
	}
	a := &fakeAssembler{missing: map[string]bool{"gone": true}, broken: map[string]bool{"flaky": true}}
	b := newBuilder(t, l, a, "")

	rep, err := b.Build(context.Background(), out)
	if err == nil || !strings.Contains(err.Error(), "/flaky") {
		t.Fatalf("expected failure for /flaky, got=%v", err)
	}
	if diff := cmp.Diff([]string{"/gone"}, rep.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(out, "ok", "index.html")); err != nil {
		t.Fatalf("healthy page not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "sitemap.xml")); err == nil {
		t.Fatalf("sitemap should be skipped without a base URL")
	}
}

func TestOutputFile(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/", "out/index.html"},
		{"/about", "out/about/index.html"},
		{"/case-studies/acme", "out/case-studies/acme/index.html"},
		{"/../../etc", "out/etc/index.html"},
		{"/Über Uns", "out/uber-uns/index.html"},
	}
	for _, tc := range cases {
		if got := filepath.ToSlash(OutputFile("out", tc.path)); got != tc.want {
			t.Fatalf("OutputFile(%q)=%q want=%q", tc.path, got, tc.want)
		}
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error")
	}
}
