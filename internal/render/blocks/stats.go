package blocks

import (
	"math"
	"strconv"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/node"
)

const ringRadius = 45

var ringCircumference = 2 * math.Pi * ringRadius

// statsCards: heading | title, description,
// stats | items | cards[] { value | number | stat, prefix, suffix, label | title, description }.
func (r *Renderer) statsCards(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	grid := node.El("div").Class("stats-cards")
	for _, it := range f.Slice("stats", "items", "cards") {
		value := it.String("value", "number", "stat")
		grid.Append(node.El("div",
			node.El("p",
				node.Text(it.String("prefix")+value+it.String("suffix")),
			).Class("stat-value").AttrIf("data-count-to", fields.Digits(value)),
			para(it.String("label", "title"), "stat-label"),
			para(textOf(it, "description", "body"), "stat-description"),
		).Class("stat-card"))
	}
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		grid,
	), surface: bg}
}

// Stat is one parsed statsCharts entry. Display keeps the parsed value; Ring
// is clamped so the progress arc stays a valid circle.
type Stat struct {
	Label   string
	Display int
	Ring    int
}

func ParseStat(it fields.Raw) Stat {
	n := fields.ParseStatPercentage(it.Any("percentage", "value", "percent"))
	return Stat{
		Label:   it.String("label", "title"),
		Display: n,
		Ring:    fields.ClampPercent(n),
	}
}

// RingDashOffset is the stroke-dashoffset that reveals pct percent of the ring.
func RingDashOffset(pct int) float64 {
	pct = fields.ClampPercent(pct)
	return ringCircumference * (1 - float64(pct)/100)
}

// statsCharts: heading | title, description,
// stats | items | charts[] { percentage | value | percent, label | title, description }.
func (r *Renderer) statsCharts(b Block) result {
	f := b.Fields
	bg := surface(b, "white")
	grid := node.El("div").Class("stats-charts")
	for _, it := range f.Slice("stats", "items", "charts") {
		st := ParseStat(it)
		grid.Append(node.El("figure",
			ring(st),
			node.El("p", node.Text(strconv.Itoa(st.Display)+"%")).Class("stat-value").
				Attr("data-count-to", strconv.Itoa(st.Display)),
			node.El("figcaption", node.Text(st.Label)).Class("stat-label"),
			para(textOf(it, "description", "body"), "stat-description"),
		).Class("stat-chart"))
	}
	return result{node: section(b, bg,
		heading("h2", f.String("heading", "title"), "section-title"),
		para(textOf(f, "description", "subheading"), "section-lead"),
		grid,
	), surface: bg}
}

func ring(st Stat) *node.Node {
	c := formatFloat(ringCircumference)
	return node.El("svg",
		node.El("circle").Class("ring-track").
			Attr("cx", "50").Attr("cy", "50").Attr("r", strconv.Itoa(ringRadius)).
			Attr("fill", "none").Attr("stroke-width", "8"),
		node.El("circle").Class("ring-progress").
			Attr("cx", "50").Attr("cy", "50").Attr("r", strconv.Itoa(ringRadius)).
			Attr("fill", "none").Attr("stroke-width", "8").
			Attr("stroke-dasharray", c).
			Attr("stroke-dashoffset", formatFloat(RingDashOffset(st.Ring))).
			Attr("transform", "rotate(-90 50 50)").
			Attr("data-ring-value", strconv.Itoa(st.Ring)),
	).Attr("viewBox", "0 0 100 100").Attr("aria-hidden", "true").Class("stat-ring")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
