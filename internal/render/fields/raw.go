// Package fields reads loosely-typed CMS block fields. Each semantic field
// has an ordered alias list; the first alias holding a usable value wins.
package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Raw is a block (or nested object) as decoded from CMS JSON. Accessors never
// mutate it.
type Raw map[string]any

// Any returns the first non-nil value among aliases. An alias may be a dotted
// path ("spacing.top") into nested objects.
func (r Raw) Any(aliases ...string) any {
	for _, a := range aliases {
		if v, ok := r.lookup(a); ok && v != nil {
			return v
		}
	}
	return nil
}

func (r Raw) lookup(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	if v, ok := r[key]; ok {
		return v, true
	}
	head, rest, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}
	child := MapFromAny(r[head])
	if child == nil {
		return nil, false
	}
	return child.lookup(rest)
}

// String returns the first alias holding a non-blank scalar, trimmed.
func (r Raw) String(aliases ...string) string {
	for _, a := range aliases {
		v, ok := r.lookup(a)
		if !ok {
			continue
		}
		if s := strings.TrimSpace(StringFromAny(v)); s != "" {
			return s
		}
	}
	return ""
}

func (r Raw) Map(aliases ...string) Raw {
	for _, a := range aliases {
		v, ok := r.lookup(a)
		if !ok {
			continue
		}
		if m := MapFromAny(v); m != nil {
			return m
		}
	}
	return nil
}

// Slice returns the first alias holding a list, keeping only its object items.
func (r Raw) Slice(aliases ...string) []Raw {
	for _, a := range aliases {
		v, ok := r.lookup(a)
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			if typed, ok := v.([]map[string]any); ok {
				out := make([]Raw, 0, len(typed))
				for _, m := range typed {
					out = append(out, Raw(m))
				}
				return out
			}
			continue
		}
		out := make([]Raw, 0, len(list))
		for _, it := range list {
			if m := MapFromAny(it); m != nil {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// List returns the first alias holding a list of any element type.
func (r Raw) List(aliases ...string) []any {
	for _, a := range aliases {
		if v, ok := r.lookup(a); ok {
			if list, ok := v.([]any); ok {
				return list
			}
		}
	}
	return nil
}

func (r Raw) Strings(aliases ...string) []string {
	for _, a := range aliases {
		v, ok := r.lookup(a)
		if !ok {
			continue
		}
		if out := StringSliceFromAny(v); len(out) > 0 {
			return out
		}
	}
	return nil
}

func (r Raw) Bool(def bool, aliases ...string) bool {
	for _, a := range aliases {
		v, ok := r.lookup(a)
		if !ok {
			continue
		}
		if b, ok := BoolFromAny(v); ok {
			return b
		}
	}
	return def
}

func (r Raw) Int(def int, aliases ...string) int {
	for _, a := range aliases {
		v, ok := r.lookup(a)
		if !ok {
			continue
		}
		if n, ok := IntFromAny(v); ok {
			return n
		}
	}
	return def
}

// Has reports whether any alias is present with a non-nil value.
func (r Raw) Has(aliases ...string) bool {
	return r.Any(aliases...) != nil
}

func StringFromAny(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int, int64, bool:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

func IntFromAny(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func BoolFromAny(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
		return false, false
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	default:
		return false, false
	}
}

func MapFromAny(v any) Raw {
	switch t := v.(type) {
	case Raw:
		return t
	case map[string]any:
		return Raw(t)
	default:
		return nil
	}
}

func StringSliceFromAny(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			s := strings.TrimSpace(StringFromAny(it))
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
