package blocks

import (
	"strconv"
	"strings"

	"github.com/yungbote/blockpage/internal/render/fields"
)

// Block is the typed envelope around one CMS layout entry. Fields is the
// original decoded map and is only ever read.
type Block struct {
	Kind          Kind
	RawType       string
	Key           string
	Index         int
	Background    string
	SpacingTop    string
	SpacingBottom string
	Fields        fields.Raw
}

// Parse wraps raw as a Block at position index. A missing id falls back to
// the position so list keys stay stable and unique; blockName is an editor
// label and may repeat.
func Parse(raw map[string]any, index int) Block {
	f := fields.Raw(raw)
	rawType := f.String("blockType", "type")
	key := f.String("id")
	if key == "" {
		key = "block-" + strconv.Itoa(index)
	}
	return Block{
		Kind:          ParseKind(rawType),
		RawType:       rawType,
		Key:           key,
		Index:         index,
		Background:    fields.BackgroundToken(f, ""),
		SpacingTop:    fields.SpacingTop(f),
		SpacingBottom: fields.SpacingBottom(f),
		Fields:        f,
	}
}

// ParseList parses a decoded layout array. Non-object entries become unknown
// blocks so they still show up as diagnostics.
func ParseList(layout []any) []Block {
	out := make([]Block, 0, len(layout))
	for i, it := range layout {
		m, ok := it.(map[string]any)
		if !ok {
			m = map[string]any{"blockType": "", "value": it}
		}
		out = append(out, Parse(m, i))
	}
	return out
}

func ParseMaps(layout []map[string]any) []Block {
	out := make([]Block, 0, len(layout))
	for i, m := range layout {
		out = append(out, Parse(m, i))
	}
	return out
}

// Anchor is the author-provided section id, if any.
func (b Block) Anchor() string {
	return strings.TrimSpace(b.Fields.String("anchor", "anchorId", "sectionId"))
}
