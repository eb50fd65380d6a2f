// Package layout wraps assembled pages in the site shell: head, navigation
// and footer around the rendered blocks.
package layout

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/tokens"
	"github.com/yungbote/blockpage/internal/site"
)

//go:embed templates/*.html
var files embed.FS

var shared = []string{"templates/base.html", "templates/nav.html", "templates/footer.html", "templates/card.html"}

type SiteInfo struct {
	Name    string
	BaseURL string
}

type Renderer struct {
	site     SiteInfo
	page     *template.Template
	listing  *template.Template
	notFound *template.Template
	now      func() time.Time
}

// view is the data every template receives.
type view struct {
	Site        SiteInfo
	Title       string
	Description string
	Canonical   string
	BodyClass   string
	NavTheme    tokens.Theme
	Nav         *cms.Navigation
	Footer      *cms.Footer
	Year        int

	Body    template.HTML
	Notice  string
	Gallery []site.Card
	Listing *site.Listing

	Status  int
	Message string
}

func New(info SiteInfo) (*Renderer, error) {
	if strings.TrimSpace(info.Name) == "" {
		info.Name = "Studio"
	}
	info.BaseURL = strings.TrimRight(info.BaseURL, "/")

	funcs := sprig.HtmlFuncMap()
	funcs["digits"] = fields.Digits

	root, err := template.New("layout").Funcs(funcs).ParseFS(files, shared...)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	load := func(name string) (*template.Template, error) {
		t, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(files, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return t, nil
	}

	r := &Renderer{site: info, now: time.Now}
	if r.page, err = load("page.html"); err != nil {
		return nil, err
	}
	if r.listing, err = load("listing.html"); err != nil {
		return nil, err
	}
	if r.notFound, err = load("notfound.html"); err != nil {
		return nil, err
	}
	return r, nil
}

// RenderPage writes a full HTML document. The nav carries the first block's
// theme so it starts legible over a dark hero.
func (r *Renderer) RenderPage(w io.Writer, p *site.Page) error {
	var body bytes.Buffer
	for _, b := range p.Blocks {
		if err := node.Render(&body, b.Node); err != nil {
			return fmt.Errorf("render block %s: %w", b.Key, err)
		}
		body.WriteByte('\n')
	}
	title := string(p.Meta.Title)
	if title == "" {
		title = p.Title
	}
	if p.Slug == site.HomeSlug && p.Meta.Title == "" {
		title = ""
	}
	v := r.base(title, string(p.Meta.Description), p.Path(), p.Nav, p.Footer)
	v.NavTheme = p.NavTheme
	v.BodyClass = "page-" + string(p.Kind)
	v.Body = template.HTML(body.String())
	v.Notice = p.Notice
	v.Gallery = p.Gallery
	return r.page.ExecuteTemplate(w, "base", v)
}

func (r *Renderer) RenderListing(w io.Writer, l *site.Listing) error {
	v := r.base(l.Title, l.Description, l.Path(), l.Nav, l.Footer)
	v.BodyClass = "page-listing"
	v.Listing = l
	return r.listing.ExecuteTemplate(w, "base", v)
}

// RenderError writes the error page for status. nav and footer may be nil.
func (r *Renderer) RenderError(w io.Writer, status int, message string, nav *cms.Navigation, footer *cms.Footer) error {
	title := "Page not found"
	if status != http.StatusNotFound {
		title = "Something went wrong"
	}
	if message == "" {
		message = http.StatusText(status)
	}
	v := r.base(title, "", "", nav, footer)
	v.BodyClass = "page-error"
	v.Status = status
	v.Message = message
	return r.notFound.ExecuteTemplate(w, "base", v)
}

func (r *Renderer) base(title, desc, path string, nav *cms.Navigation, footer *cms.Footer) view {
	v := view{
		Site:        r.site,
		Title:       title,
		Description: desc,
		NavTheme:    tokens.ThemeLight,
		Nav:         nav,
		Footer:      footer,
		Year:        r.now().Year(),
	}
	if path != "" && r.site.BaseURL != "" {
		v.Canonical = r.site.BaseURL + path
	}
	return v
}
