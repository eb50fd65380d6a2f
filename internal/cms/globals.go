package cms

import (
	"context"
	"strings"

	"github.com/yungbote/blockpage/internal/render/fields"
)

type NavLink struct {
	Label    string    `json:"label" yaml:"label"`
	Href     string    `json:"href" yaml:"href"`
	NewTab   bool      `json:"newTab,omitempty" yaml:"new_tab,omitempty"`
	Children []NavLink `json:"children,omitempty" yaml:"children,omitempty"`
}

type Navigation struct {
	Items []NavLink `json:"items" yaml:"items"`
	CTA   *NavLink  `json:"cta,omitempty" yaml:"cta,omitempty"`
}

type FooterColumn struct {
	Title string    `json:"title" yaml:"title"`
	Links []NavLink `json:"links" yaml:"links"`
}

type Footer struct {
	Columns   []FooterColumn `json:"columns" yaml:"columns"`
	Social    []NavLink      `json:"social,omitempty" yaml:"social,omitempty"`
	Legal     []NavLink      `json:"legal,omitempty" yaml:"legal,omitempty"`
	Tagline   string         `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Address   string         `json:"address,omitempty" yaml:"address,omitempty"`
	Email     string         `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string         `json:"phone,omitempty" yaml:"phone,omitempty"`
	Copyright string         `json:"copyright,omitempty" yaml:"copyright,omitempty"`
}

func (n *Navigation) Empty() bool { return n == nil || len(n.Items) == 0 }

func (f *Footer) Empty() bool { return f == nil || (len(f.Columns) == 0 && len(f.Legal) == 0 && len(f.Social) == 0) }

func (c *HTTPClient) Navigation(ctx context.Context) (*Navigation, error) {
	var raw map[string]any
	if err := c.getJSON(ctx, "/globals/navigation", NewQuery().Depth(1), &raw); err != nil {
		return nil, err
	}
	return ParseNavigation(raw), nil
}

func (c *HTTPClient) Footer(ctx context.Context) (*Footer, error) {
	var raw map[string]any
	if err := c.getJSON(ctx, "/globals/footer", NewQuery().Depth(1), &raw); err != nil {
		return nil, err
	}
	return ParseFooter(raw), nil
}

// ParseNavigation accepts Payload link groups ({link: {label, url, reference}})
// as well as flat {label, href} items.
func ParseNavigation(raw map[string]any) *Navigation {
	f := fields.Raw(raw)
	nav := &Navigation{Items: parseLinks(f.Slice("navItems", "items", "links"))}
	if cta, ok := parseLink(f.Map("cta", "ctaButton")); ok {
		nav.CTA = &cta
	}
	return nav
}

func ParseFooter(raw map[string]any) *Footer {
	f := fields.Raw(raw)
	out := &Footer{
		Social:    parseLinks(f.Slice("socialLinks", "social")),
		Legal:     parseLinks(f.Slice("legalLinks", "legal")),
		Tagline:   f.String("tagline", "description"),
		Address:   f.String("address"),
		Email:     f.String("email"),
		Phone:     f.String("phone"),
		Copyright: f.String("copyright", "copyrightText"),
	}
	for _, col := range f.Slice("columns", "linkGroups", "navGroups") {
		out.Columns = append(out.Columns, FooterColumn{
			Title: col.String("title", "heading", "label"),
			Links: parseLinks(col.Slice("links", "navItems", "items")),
		})
	}
	return out
}

func parseLinks(items []fields.Raw) []NavLink {
	out := make([]NavLink, 0, len(items))
	for _, it := range items {
		if l, ok := parseLink(it); ok {
			out = append(out, l)
		}
	}
	return out
}

// parseLink reads {label, href} items and Payload link groups. The group
// is passed to ParseButton under "link" so reference slugs resolve.
func parseLink(it fields.Raw) (NavLink, bool) {
	if it == nil {
		return NavLink{}, false
	}
	src := it
	if link := it.Map("link"); link != nil {
		src = fields.Raw{
			"label":  firstString(link.String("label"), it.String("label", "text")),
			"newTab": link.Bool(it.Bool(false, "newTab"), "newTab"),
			"link":   link,
		}
	} else if it.String("platform") != "" && it.String("label") == "" {
		src = fields.Raw{"label": it.String("platform"), "href": it.String("url", "href")}
	}
	b, ok := fields.ParseButton(src)
	if !ok || strings.TrimSpace(b.Text) == "" || b.Href == "" || (b.Href == b.Text && !strings.ContainsAny(b.Href, "/:#")) {
		return NavLink{}, false
	}
	return NavLink{
		Label:    strings.TrimSpace(b.Text),
		Href:     b.Href,
		NewTab:   b.NewTab,
		Children: parseLinks(it.Slice("children", "subItems", "subNav")),
	}, true
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
