// Package node is the render tree produced by the block renderer. It is plain
// data so two renders of the same input compare equal, and serializes to HTML
// through golang.org/x/net/html.
package node

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Attr struct {
	Key string
	Val string
}

// Node is an element when Tag is set, a text node when Text is set, verbatim
// markup when Raw is set, and otherwise a fragment of its Children.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Raw      string
	Children []*Node
}

func El(tag string, children ...*Node) *Node {
	return (&Node{Tag: tag}).Append(children...)
}

func Text(s string) *Node { return &Node{Text: s} }

func RawHTML(s string) *Node { return &Node{Raw: s} }

func Fragment(children ...*Node) *Node { return (&Node{}).Append(children...) }

// Append adds children, skipping nils so optional parts can be passed inline.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func (n *Node) Attr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// AttrIf sets key only when val is non-empty.
func (n *Node) AttrIf(key, val string) *Node {
	if strings.TrimSpace(val) == "" {
		return n
	}
	return n.Attr(key, val)
}

func (n *Node) Class(classes ...string) *Node {
	return n.appendTo("class", " ", classes)
}

// Style appends CSS declarations such as "height: 60%".
func (n *Node) Style(decls ...string) *Node {
	return n.appendTo("style", "; ", decls)
}

func (n *Node) appendTo(key, sep string, vals []string) *Node {
	var keep []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			keep = append(keep, v)
		}
	}
	if len(keep) == 0 {
		return n
	}
	joined := strings.Join(keep, sep)
	if cur, ok := n.Get(key); ok && cur != "" {
		joined = cur + sep + joined
	}
	return n.Attr(key, joined)
}

func (n *Node) Get(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Walk visits n and its descendants depth-first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node in document order matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var hit *Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			hit = c
			return false
		}
		return true
	})
	return hit
}

func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

func HasClass(class string) func(*Node) bool {
	return func(n *Node) bool {
		v, ok := n.Get("class")
		if !ok {
			return false
		}
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		b.WriteString(c.Text)
		return true
	})
	return b.String()
}

func Render(w io.Writer, n *Node) error {
	for _, hn := range toHTML(n) {
		if err := html.Render(w, hn); err != nil {
			return err
		}
	}
	return nil
}

func String(n *Node) string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

func toHTML(n *Node) []*html.Node {
	switch {
	case n == nil:
		return nil
	case n.Tag != "":
		el := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
		for _, a := range n.Attrs {
			el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		for _, c := range n.Children {
			for _, hc := range toHTML(c) {
				el.AppendChild(hc)
			}
		}
		return []*html.Node{el}
	case n.Raw != "":
		return []*html.Node{{Type: html.RawNode, Data: n.Raw}}
	case n.Text != "":
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	default:
		var out []*html.Node
		for _, c := range n.Children {
			out = append(out, toHTML(c)...)
		}
		return out
	}
}
