// Package fallback holds the static navigation, footer and category list
// served when the CMS cannot be reached and no snapshot exists.
package fallback

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/blockpage/internal/cms"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Set struct {
	Navigation cms.Navigation `yaml:"navigation"`
	Footer     cms.Footer     `yaml:"footer"`
	Categories []cms.Category `yaml:"categories"`
}

// Default parses the embedded defaults. It panics only if the embedded file
// is broken, which tests catch.
func Default() *Set {
	s, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("fallback: embedded defaults: %v", err))
	}
	return s
}

func Parse(b []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load overlays a site-specific file on the embedded defaults. Sections
// missing from the file keep their defaults. An empty path returns Default().
func Load(path string) (*Set, error) {
	base := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback %s: %w", path, err)
	}
	over, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse fallback %s: %w", path, err)
	}
	if !over.Navigation.Empty() {
		base.Navigation = over.Navigation
	}
	if !over.Footer.Empty() {
		base.Footer = over.Footer
	}
	if len(over.Categories) > 0 {
		base.Categories = over.Categories
	}
	return base, nil
}

// NavigationCopy and friends hand out copies so callers may not alias the
// shared set.
func (s *Set) NavigationCopy() *cms.Navigation {
	n := s.Navigation
	n.Items = append([]cms.NavLink(nil), s.Navigation.Items...)
	if s.Navigation.CTA != nil {
		cta := *s.Navigation.CTA
		n.CTA = &cta
	}
	return &n
}

func (s *Set) FooterCopy() *cms.Footer {
	f := s.Footer
	f.Columns = append([]cms.FooterColumn(nil), s.Footer.Columns...)
	f.Social = append([]cms.NavLink(nil), s.Footer.Social...)
	f.Legal = append([]cms.NavLink(nil), s.Footer.Legal...)
	return &f
}

func (s *Set) CategoriesCopy() []cms.Category {
	return append([]cms.Category(nil), s.Categories...)
}
