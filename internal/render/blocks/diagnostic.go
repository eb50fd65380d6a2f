package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/yungbote/blockpage/internal/render/node"
)

func unknownNode(b Block) *node.Node {
	label := b.RawType
	if label == "" {
		label = "(missing blockType)"
	}
	return node.El("section",
		node.El("p", node.Text("Unknown block type: "+label)).Class("block-diagnostic-title"),
		node.El("pre", node.Text(dump(b.Fields))).Class("block-diagnostic-dump"),
	).Class("block", "block-unknown", "block-diagnostic").
		Attr("data-block-type", b.RawType).
		Attr("role", "alert")
}

func failedNode(b Block, p any) *node.Node {
	return node.El("section",
		node.El("p", node.Text(fmt.Sprintf("Failed to render %s block %q: %v", b.RawType, b.Key, p))).Class("block-diagnostic-title"),
	).Class("block", "block-error", "block-diagnostic").
		Attr("data-block-type", b.RawType).
		Attr("role", "alert")
}

// dump is deterministic: encoding/json sorts map keys.
func dump(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
