package cms

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yungbote/blockpage/internal/render/richtext"
)

// ID is a Payload document id. Postgres-backed collections send numbers,
// Mongo-backed ones strings; both decode to the same text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Envelope is Payload's list response.
type Envelope[T any] struct {
	Docs          []T  `json:"docs"`
	TotalDocs     int  `json:"totalDocs"`
	Limit         int  `json:"limit"`
	Page          int  `json:"page"`
	TotalPages    int  `json:"totalPages"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
	PagingCounter int  `json:"pagingCounter"`
}

// Ref is a relationship field: an inlined document at sufficient depth, a
// bare id otherwise.
type Ref[T any] struct {
	ID  ID
	Doc *T
}

// UnmarshalJSON never fails: a shape that is neither an id nor a document
// leaves the reference empty.
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch b[0] {
	case '{':
		var head struct {
			ID ID `json:"id"`
		}
		if err := json.Unmarshal(b, &head); err == nil {
			r.ID = head.ID
		}
		var doc T
		if err := json.Unmarshal(b, &doc); err == nil {
			r.Doc = &doc
		}
	case '[', 't', 'f':
	default:
		var id ID
		if err := json.Unmarshal(b, &id); err == nil {
			r.ID = id
		}
	}
	return nil
}

func (r Ref[T]) Resolved() bool { return r.Doc != nil }

// RefList is a hasMany relationship. Anything but an array decodes empty.
type RefList[T any] []Ref[T]

func (l *RefList[T]) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(RefList[T], 0, len(raw))
	for _, item := range raw {
		var r Ref[T]
		_ = r.UnmarshalJSON(item)
		if r.ID != "" || r.Doc != nil {
			out = append(out, r)
		}
	}
	*l = out
	return nil
}

// Text is an author-entered text field. Editors switch fields between plain
// text and rich text over time, so a rich-text document is flattened to
// paragraphs and any other non-string shape decodes as empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*t = ""
		return nil
	}
	switch x := v.(type) {
	case string:
		*t = Text(x)
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	case map[string]any:
		*t = Text(richtext.FlattenToParagraphs(x))
	default:
		*t = ""
	}
	return nil
}

func (t Text) String() string { return string(t) }

// List holds loosely-typed block arrays. A non-array value decodes as empty.
type List []any

func (l *List) UnmarshalJSON(b []byte) error {
	var v []any
	if err := json.Unmarshal(b, &v); err != nil {
		*l = nil
		return nil
	}
	*l = v
	return nil
}

// publication is embedded by every versioned collection. Payload's drafts
// feature writes _status; older schemas used a plain status select.
type publication struct {
	Status      Status `json:"status,omitempty"`
	DraftStatus Status `json:"_status,omitempty"`
}

// EffectiveStatus treats a document without either field as published, since
// collections without drafts have no status at all.
func (p publication) EffectiveStatus() Status {
	s := Status(strings.ToLower(strings.TrimSpace(string(p.Status))))
	if s == "" {
		s = Status(strings.ToLower(strings.TrimSpace(string(p.DraftStatus))))
	}
	if s == "" {
		return StatusPublished
	}
	return s
}

func (p publication) Published() bool { return p.EffectiveStatus() == StatusPublished }

type Meta struct {
	Title       Text `json:"title,omitempty"`
	Description Text `json:"description,omitempty"`
	Image       any  `json:"image,omitempty"`
}

type Page struct {
	publication
	ID        ID     `json:"id"`
	Title     Text   `json:"title"`
	Slug      string `json:"slug"`
	Layout    List   `json:"layout"`
	Blocks    List   `json:"blocks,omitempty"`
	Meta      Meta   `json:"meta"`
	UpdatedAt Text   `json:"updatedAt,omitempty"`
}

// LayoutBlocks returns layout, or the older blocks field when layout is empty.
func (p *Page) LayoutBlocks() []any {
	if len(p.Layout) > 0 {
		return p.Layout
	}
	return p.Blocks
}

type ClientInfo struct {
	ID       ID   `json:"id"`
	Name     Text `json:"name"`
	Logo     any  `json:"logo,omitempty"`
	Industry Text `json:"industry,omitempty"`
	Website  Text `json:"website,omitempty"`
}

type Category struct {
	ID          ID     `json:"id"`
	Title       Text   `json:"title" yaml:"title"`
	Slug        string `json:"slug" yaml:"slug"`
	Description Text   `json:"description,omitempty" yaml:"description,omitempty"`
}

type CaseStudy struct {
	publication
	ID         ID                `json:"id"`
	Title      Text              `json:"title"`
	Slug       string            `json:"slug"`
	Layout     List              `json:"layout"`
	Client     Ref[ClientInfo]   `json:"client"`
	Categories RefList[Category] `json:"categories,omitempty"`
	Meta       Meta              `json:"meta"`
	UpdatedAt  Text              `json:"updatedAt,omitempty"`

	// Card fields used by galleries and listings.
	Excerpt       Text `json:"excerpt,omitempty"`
	FeaturedImage any  `json:"featuredImage,omitempty"`
	ResultsVideo  any  `json:"resultsVideo,omitempty"`

	// Fields from before case studies were block-based. Rendered only when
	// Layout is empty.
	HeroHeading    Text `json:"heroHeading,omitempty"`
	HeroSubheading Text `json:"heroSubheading,omitempty"`
	HeroImage      any  `json:"heroImage,omitempty"`
	Introduction   any  `json:"introduction,omitempty"`
	CompanyIntro   any  `json:"companyIntro,omitempty"`
	PainPoints     List `json:"painPoints,omitempty"`
}

// HasLegacyContent reports whether any pre-block body field is populated.
func (c *CaseStudy) HasLegacyContent() bool {
	return present(c.Introduction) || present(c.CompanyIntro) || len(c.PainPoints) > 0
}

func (c *CaseStudy) ClientName() string {
	if c.Client.Doc != nil {
		return strings.TrimSpace(string(c.Client.Doc.Name))
	}
	return ""
}

func (c *CaseStudy) InCategory(slug string) bool {
	for _, cat := range c.Categories {
		if cat.Doc != nil && cat.Doc.Slug == slug {
			return true
		}
	}
	return false
}

type BlogPost struct {
	publication
	ID            ID     `json:"id"`
	Title         Text   `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       Text   `json:"excerpt,omitempty"`
	FeaturedImage any    `json:"featuredImage,omitempty"`
	PublishedAt   Text   `json:"publishedAt,omitempty"`
}

// Card is the shape blog carousels read.
func (p BlogPost) Card() map[string]any {
	return map[string]any{
		"id":            string(p.ID),
		"title":         string(p.Title),
		"slug":          p.Slug,
		"excerpt":       string(p.Excerpt),
		"featuredImage": p.FeaturedImage,
		"publishedAt":   string(p.PublishedAt),
	}
}

type MediaSize struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Media struct {
	ID       ID                   `json:"id"`
	URL      string               `json:"url"`
	Alt      Text                 `json:"alt,omitempty"`
	Filename string               `json:"filename,omitempty"`
	MimeType string               `json:"mimeType,omitempty"`
	Width    int                  `json:"width,omitempty"`
	Height   int                  `json:"height,omitempty"`
	Sizes    map[string]MediaSize `json:"sizes,omitempty"`
}

// AsRef converts the upload into the object shape blocks hold at depth >= 1.
func (m *Media) AsRef() map[string]any {
	ref := map[string]any{"id": string(m.ID), "url": m.URL, "alt": string(m.Alt)}
	if m.MimeType != "" {
		ref["mimeType"] = m.MimeType
	}
	if len(m.Sizes) > 0 {
		sizes := make(map[string]any, len(m.Sizes))
		for name, s := range m.Sizes {
			if s.URL == "" {
				continue
			}
			sizes[name] = map[string]any{"url": s.URL, "width": float64(s.Width), "height": float64(s.Height)}
		}
		ref["sizes"] = sizes
	}
	return ref
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
