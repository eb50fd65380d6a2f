package cms

import (
	"net/url"
	"strconv"
)

// Query builds Payload REST query strings with the bracket filter syntax,
// e.g. where[slug][equals]=about.
type Query struct {
	v url.Values
}

func NewQuery() *Query { return &Query{v: url.Values{}} }

func (q *Query) Where(field, op, value string) *Query {
	q.v.Set("where["+field+"]["+op+"]", value)
	return q
}

// WhereAnd adds a condition under where[and][i] so one field can carry
// several operators.
func (q *Query) WhereAnd(i int, field, op, value string) *Query {
	q.v.Set("where[and]["+strconv.Itoa(i)+"]["+field+"]["+op+"]", value)
	return q
}

func (q *Query) Depth(d int) *Query {
	q.v.Set("depth", strconv.Itoa(d))
	return q
}

func (q *Query) Limit(n int) *Query {
	if n > 0 {
		q.v.Set("limit", strconv.Itoa(n))
	}
	return q
}

func (q *Query) Page(n int) *Query {
	if n > 0 {
		q.v.Set("page", strconv.Itoa(n))
	}
	return q
}

func (q *Query) Sort(field string) *Query {
	if field != "" {
		q.v.Set("sort", field)
	}
	return q
}

func (q *Query) Values() url.Values { return q.v }

func (q *Query) Encode() string { return q.v.Encode() }
