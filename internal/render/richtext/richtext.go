// Package richtext flattens Lexical rich-text documents into plain text.
package richtext

import (
	"strings"

	"github.com/yungbote/blockpage/internal/render/fields"
)

// formatBold is the Lexical text-format bit for bold.
const formatBold = 1

type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
)

type Span struct {
	Text string
	Bold bool
}

type TextBlock struct {
	Kind Kind
	// Tag is the heading level ("h2") or list type ("bullet", "number").
	Tag   string
	Spans []Span
	Items [][]Span
}

func (b TextBlock) Text() string { return spansText(b.Spans) }

type Flat struct {
	Title string
	Body  string
}

// Flatten splits a document into a title and a body. A plain string is the
// body. When several headings exist the last one becomes the title. List
// items are appended to the body one paragraph each.
func Flatten(doc any) Flat {
	if s, ok := doc.(string); ok {
		return Flat{Body: strings.TrimSpace(s)}
	}
	var out Flat
	var body []string
	for _, b := range Blocks(doc) {
		switch b.Kind {
		case KindHeading:
			out.Title = b.Text()
		case KindParagraph:
			if t := b.Text(); t != "" {
				body = append(body, t)
			}
		case KindList:
			for _, it := range b.Items {
				if t := spansText(it); t != "" {
					body = append(body, t)
				}
			}
		}
	}
	out.Body = strings.Join(body, "\n\n")
	return out
}

// FlattenToParagraphs renders every text block, headings included, as one
// paragraph each separated by a blank line.
func FlattenToParagraphs(doc any) string {
	if s, ok := doc.(string); ok {
		return strings.TrimSpace(s)
	}
	var parts []string
	for _, b := range Blocks(doc) {
		if b.Kind == KindList {
			for _, it := range b.Items {
				if t := spansText(it); t != "" {
					parts = append(parts, t)
				}
			}
			continue
		}
		if t := b.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Blocks returns the document's top-level text blocks in order. Section-like
// containers are walked through. Malformed input yields nil.
func Blocks(doc any) []TextBlock {
	var out []TextBlock
	for _, n := range rootChildren(doc) {
		out = appendBlocks(out, n)
	}
	return out
}

// IsDocument reports whether v looks like a rich-text tree rather than a scalar.
func IsDocument(v any) bool {
	m := fields.MapFromAny(v)
	return m != nil && (m.Has("root") || m.Has("children"))
}

func rootChildren(doc any) []fields.Raw {
	m := fields.MapFromAny(doc)
	if m == nil {
		if list, ok := doc.([]any); ok {
			return fields.Raw{"children": list}.Slice("children")
		}
		return nil
	}
	if root := m.Map("root"); root != nil {
		return root.Slice("children")
	}
	return m.Slice("children")
}

func appendBlocks(out []TextBlock, n fields.Raw) []TextBlock {
	switch strings.ToLower(n.String("type")) {
	case "heading":
		return append(out, TextBlock{Kind: KindHeading, Tag: n.String("tag"), Spans: spans(n)})
	case "paragraph", "quote":
		return append(out, TextBlock{Kind: KindParagraph, Spans: spans(n)})
	case "list":
		b := TextBlock{Kind: KindList, Tag: n.String("listType", "tag")}
		for _, item := range n.Slice("children") {
			if s := spans(item); len(s) > 0 {
				b.Items = append(b.Items, s)
			}
		}
		return append(out, b)
	case "text":
		if t := n.String("text"); t != "" {
			return append(out, TextBlock{Kind: KindParagraph, Spans: []Span{textSpan(n)}})
		}
		return out
	default:
		for _, c := range n.Slice("children") {
			out = appendBlocks(out, c)
		}
		return out
	}
}

// spans collects the inline text beneath n. Adjacent spans with the same
// weight are merged.
func spans(n fields.Raw) []Span {
	var out []Span
	var walk func(fields.Raw)
	walk = func(c fields.Raw) {
		switch strings.ToLower(c.String("type")) {
		case "text":
			out = appendSpan(out, textSpan(c))
			return
		case "linebreak":
			out = appendSpan(out, Span{Text: "\n"})
			return
		}
		for _, cc := range c.Slice("children") {
			walk(cc)
		}
	}
	for _, c := range n.Slice("children") {
		walk(c)
	}
	return out
}

func textSpan(n fields.Raw) Span {
	format := n.Int(0, "format")
	return Span{Text: fields.StringFromAny(n["text"]), Bold: format&formatBold != 0}
}

func appendSpan(out []Span, s Span) []Span {
	if s.Text == "" {
		return out
	}
	if len(out) > 0 && out[len(out)-1].Bold == s.Bold {
		out[len(out)-1].Text += s.Text
		return out
	}
	return append(out, s)
}

func spansText(s []Span) string {
	var b strings.Builder
	for _, sp := range s {
		b.WriteString(sp.Text)
	}
	return strings.TrimSpace(b.String())
}
