package blocks

import (
	"encoding/json"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/node"
	"github.com/yungbote/blockpage/internal/render/richtext"
)

type qa struct {
	Anchor   string
	Question string
	Answer   any
}

func collectQA(items []fields.Raw, qKeys, aKeys []string, prefix string) []qa {
	ids := anchors{}
	out := make([]qa, 0, len(items))
	for i, it := range items {
		q := it.String(qKeys...)
		if q == "" {
			continue
		}
		out = append(out, qa{
			Anchor:   ids.next(q, prefix+"-"+itoa(i+1)),
			Question: q,
			Answer:   it.Any(aKeys...),
		})
	}
	return out
}

func details(item qa, open bool) *node.Node {
	d := node.El("details",
		node.El("summary", node.Text(item.Question)),
		node.El("div", rich(item.Answer)...).Class("accordion-body"),
	).Attr("id", item.Anchor).Class("accordion-item")
	if open {
		d.Attr("open", "")
	}
	return d
}

// accordion: heading | title, description,
// items | accordionItems | panels[] { title | question | heading, content | answer | body },
// openFirst | defaultOpen, allowMultiple.
func (r *Renderer) accordion(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	items := collectQA(f.Slice("items", "accordionItems", "panels"),
		[]string{"title", "question", "heading"}, []string{"content", "answer", "body"}, "item")

	list := node.El("div").Class("accordion").
		Attr("data-allow-multiple", boolAttr(f.Bool(false, "allowMultiple")))
	openFirst := f.Bool(false, "openFirst", "defaultOpen")
	for i, it := range items {
		list.Append(details(it, openFirst && i == 0))
	}
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		list,
	), surface: bg}
}

// faqSection: heading | title (default "Frequently asked questions"),
// faqs | items | questions[] { question | title, answer | content }.
// Also emits FAQPage structured data.
func (r *Renderer) faqSection(b Block) result {
	f := b.Fields
	bg := surface(b, "off-white")
	items := collectQA(f.Slice("faqs", "items", "questions"),
		[]string{"question", "title"}, []string{"answer", "content"}, "faq")

	list := node.El("div").Class("accordion", "faq-list")
	for _, it := range items {
		list.Append(details(it, false))
	}
	title := f.String("heading", "title")
	if title == "" {
		title = "Frequently asked questions"
	}
	return result{node: section(b, bg,
		heading("h2", title, "section-title"),
		list,
		faqJSONLD(items),
	), surface: bg}
}

type faqPage struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []faqQuestion `json:"mainEntity"`
}

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

func faqJSONLD(items []qa) *node.Node {
	if len(items) == 0 {
		return nil
	}
	page := faqPage{Context: "https://schema.org", Type: "FAQPage"}
	for _, it := range items {
		answer := richtext.FlattenToParagraphs(it.Answer)
		page.MainEntity = append(page.MainEntity, faqQuestion{
			Type:           "Question",
			Name:           it.Question,
			AcceptedAnswer: faqAnswer{Type: "Answer", Text: answer},
		})
	}
	// json.Marshal escapes <, > and & so the payload cannot close the script.
	raw, err := json.Marshal(page)
	if err != nil {
		return nil
	}
	return node.El("script", node.Text(string(raw))).Attr("type", "application/ld+json")
}
