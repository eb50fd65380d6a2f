package cms

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripperFunc, retries int) *HTTPClient {
	t.Helper()
	c, err := New(Options{
		BaseURL:    "http://cms.test/api/",
		APIKey:     "secret",
		Depth:      2,
		Timeout:    2 * time.Second,
		MaxRetries: retries,
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestFindPageBySlug_BuildsPayloadQuery(t *testing.T) {
	var gotURL, gotAuth string
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		return jsonResponse(200, `{"docs":[{"id":7,"title":"About","slug":"about","layout":[{"blockType":"hero"}]}],"totalDocs":1}`), nil
	}, 0)

	page, err := c.FindPageBySlug(context.Background(), "about")
	if err != nil {
		t.Fatalf("FindPageBySlug: %v", err)
	}
	if page.ID != "7" || page.Slug != "about" || len(page.LayoutBlocks()) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if !strings.HasPrefix(gotURL, "http://cms.test/api/pages?") {
		t.Fatalf("url=%q", gotURL)
	}
	for _, want := range []string{"where%5Bslug%5D%5Bequals%5D=about", "depth=2", "limit=1"} {
		if !strings.Contains(gotURL, want) {
			t.Fatalf("url=%q missing %q", gotURL, want)
		}
	}
	if gotAuth != "users API-Key secret" {
		t.Fatalf("authorization=%q", gotAuth)
	}
}

func TestFindPageBySlug_EmptyDocsIsNotFound(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"docs":[]}`), nil
	}, 0)
	_, err := c.FindPageBySlug(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetJSON_404MapsToNotFoundWithoutRetry(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(404, `{"errors":[{"message":"The requested resource was not found."}]}`), nil
	}, 3)
	_, err := c.MediaByID(context.Background(), "42")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var he *HTTPError
	if !errors.As(err, &he) || he.Message != "The requested resource was not found." {
		t.Fatalf("expected parsed message, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls=%d", got)
	}
}

func TestGetJSON_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return jsonResponse(503, `{}`), nil
		}
		return jsonResponse(200, `{"docs":[{"id":"a","title":"Design","slug":"design"}]}`), nil
	}, 1)
	cats, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 1 || cats[0].Slug != "design" {
		t.Fatalf("cats=%+v", cats)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls=%d", got)
	}
}

func TestListCaseStudies_FiltersDraftsAndExcluded(t *testing.T) {
	var gotURL string
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.RawQuery
		return jsonResponse(200, `{"docs":[
			{"id":1,"slug":"one","_status":"published"},
			{"id":2,"slug":"two","_status":"draft"},
			{"id":3,"slug":"three"},
			{"id":4,"slug":"four","status":"published"}
		]}`), nil
	}, 0)
	got, err := c.ListCaseStudies(context.Background(), ListOptions{ExcludeID: "4", CategorySlug: "branding", Limit: 6})
	if err != nil {
		t.Fatalf("ListCaseStudies: %v", err)
	}
	var slugs []string
	for _, cs := range got {
		slugs = append(slugs, cs.Slug)
	}
	if strings.Join(slugs, ",") != "one,three" {
		t.Fatalf("slugs=%v", slugs)
	}
	for _, want := range []string{"not_equals%5D=4", "categories.slug%5D%5Bequals%5D=branding", "limit=6"} {
		if !strings.Contains(gotURL, want) {
			t.Fatalf("query=%q missing %q", gotURL, want)
		}
	}
}

func TestCaseStudy_DecodesRelationsAtAnyDepth(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"docs":[{"id":"cs1","slug":"acme","client":{"id":9,"name":"Acme"},"categories":[3,{"id":4,"slug":"web","title":"Web"}]}]}`), nil
	}, 0)
	cs, err := c.FindCaseStudyBySlug(context.Background(), "acme")
	if err != nil {
		t.Fatalf("FindCaseStudyBySlug: %v", err)
	}
	if cs.ClientName() != "Acme" || cs.Client.ID != "9" {
		t.Fatalf("client=%+v", cs.Client)
	}
	if len(cs.Categories) != 2 || cs.Categories[0].Resolved() || cs.Categories[0].ID != "3" {
		t.Fatalf("categories=%+v", cs.Categories)
	}
	if !cs.InCategory("web") || cs.InCategory("print") {
		t.Fatalf("InCategory mismatch")
	}
}

func TestCaseStudy_ToleratesReshapedContentFields(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"docs":[{
			"id":"cs1","slug":"acme","_status":"published",
			"title":["not","text"],
			"excerpt":{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"Short summary"}]}]}},
			"heroHeading":2024,
			"heroSubheading":{"unexpected":true},
			"client":true,
			"categories":{"id":4},
			"layout":{"blockType":"hero"},
			"painPoints":"none",
			"meta":{"title":{"root":{"children":[]}},"description":false}
		}]}`), nil
	}, 0)

	cs, err := c.FindCaseStudyBySlug(context.Background(), "acme")
	if err != nil {
		t.Fatalf("FindCaseStudyBySlug: %v", err)
	}
	if !cs.Published() || cs.ID != "cs1" || cs.Slug != "acme" {
		t.Fatalf("identity lost: %+v", cs)
	}
	if cs.Excerpt != "Short summary" {
		t.Fatalf("excerpt=%q", cs.Excerpt)
	}
	if cs.Title != "" || cs.HeroHeading != "2024" || cs.HeroSubheading != "" {
		t.Fatalf("title=%q heroHeading=%q heroSubheading=%q", cs.Title, cs.HeroHeading, cs.HeroSubheading)
	}
	if cs.Client.ID != "" || cs.Client.Resolved() || len(cs.Categories) != 0 {
		t.Fatalf("client=%+v categories=%+v", cs.Client, cs.Categories)
	}
	if len(cs.Layout) != 0 || len(cs.PainPoints) != 0 || cs.Meta.Title != "" || cs.Meta.Description != "" {
		t.Fatalf("layout=%v painPoints=%v meta=%+v", cs.Layout, cs.PainPoints, cs.Meta)
	}
}

func TestListBlogPosts_OneReshapedPostKeepsTheList(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"docs":[
			{"id":1,"slug":"first","title":"First","excerpt":{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"Rich"}]}]}}},
			{"id":2,"slug":"second","title":{"oops":1},"excerpt":"Plain","publishedAt":17}
		]}`), nil
	}, 0)

	posts, err := c.ListBlogPosts(context.Background(), ListOptions{Limit: 3})
	if err != nil {
		t.Fatalf("ListBlogPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts=%d", len(posts))
	}
	if posts[0].Excerpt != "Rich" || posts[1].Excerpt != "Plain" || posts[1].Title != "" {
		t.Fatalf("posts=%+v", posts)
	}
	card := posts[0].Card()
	if got, _ := card["excerpt"].(string); got != "Rich" {
		t.Fatalf("card excerpt=%#v", card["excerpt"])
	}
}

func TestRef_UnexpectedShapesLeaveReferenceEmpty(t *testing.T) {
	for _, raw := range []string{`true`, `[1,2]`, `{"id":{"nested":1}}`, `"  "`} {
		var r Ref[ClientInfo]
		if err := r.UnmarshalJSON([]byte(raw)); err != nil {
			t.Fatalf("%s: err=%v", raw, err)
		}
		if r.ID != "" {
			t.Fatalf("%s: id=%q", raw, r.ID)
		}
	}
}

func TestNavigation_ParsesLinkGroups(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/globals/navigation" {
			t.Fatalf("path=%q", r.URL.Path)
		}
		return jsonResponse(200, `{"navItems":[
			{"link":{"type":"reference","label":"Home","reference":{"relationTo":"pages","value":{"slug":"home"}}}},
			{"link":{"type":"custom","label":"Work","url":"/case-studies"}},
			{"link":{"type":"custom","label":"Broken"}}
		],"cta":{"label":"Contact","href":"/contact"}}`), nil
	}, 0)
	nav, err := c.Navigation(context.Background())
	if err != nil {
		t.Fatalf("Navigation: %v", err)
	}
	if len(nav.Items) != 2 {
		t.Fatalf("items=%+v", nav.Items)
	}
	if nav.Items[0].Href != "/" || nav.Items[1].Href != "/case-studies" {
		t.Fatalf("hrefs=%+v", nav.Items)
	}
	if nav.CTA == nil || nav.CTA.Href != "/contact" {
		t.Fatalf("cta=%+v", nav.CTA)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error")
	}
}
