package requestid

import (
	"strings"

	"github.com/google/uuid"
)

const Header = "X-Request-Id"

func New() string {
	return uuid.New().String()
}

// FromHeader keeps a caller-supplied id when it looks sane and mints one otherwise.
func FromHeader(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > 128 {
		return New()
	}
	return v
}
