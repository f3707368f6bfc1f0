package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Requirement is an attribute-match predicate. Filters, module dependencies
// and conflict declarations all share this shape.
type Requirement map[string]string

// MatchedBy reports whether every key of the requirement is present in attrs
// with an equal value. A key missing from attrs is a non-match.
func (r Requirement) MatchedBy(attrs map[string]string) bool {
	for key, want := range r {
		got, ok := attrs[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// String renders the requirement with sorted keys so log lines are stable.
func (r Requirement) String() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Module is a single selectable catalog entry (a vulnerability, service,
// base image, ...).
type Module struct {
	Path       string            `yaml:"path" json:"path"`
	Name       string            `yaml:"name,omitempty" json:"name,omitempty"`
	Type       string            `yaml:"type" json:"type"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Requires   []Requirement     `yaml:"requires,omitempty" json:"requires,omitempty"`
	Conflicts  []Requirement     `yaml:"conflicts,omitempty" json:"conflicts,omitempty"`
}

// MatchesAttributes reports whether the module satisfies req.
func (m *Module) MatchesAttributes(req Requirement) bool {
	return req.MatchedBy(m.Attributes)
}

// ConflictsWith reports whether m declares a conflict with other. The
// declaration is one-directional; callers that need the symmetric relation
// must also ask other.
func (m *Module) ConflictsWith(other *Module) bool {
	if other == nil {
		return false
	}
	for _, c := range m.Conflicts {
		if other.MatchesAttributes(c) {
			return true
		}
	}
	return false
}

// PrintableName returns the display name, falling back to the path.
func (m *Module) PrintableName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Path
}

// Validate checks the fields the resolver relies on.
func (m *Module) Validate() error {
	if m.Path == "" {
		return fmt.Errorf("module path is required")
	}
	if m.Type == "" {
		return fmt.Errorf("module %q: type is required", m.Path)
	}
	for i, c := range m.Conflicts {
		if len(c) == 0 {
			// an empty conflict declaration would exclude every module
			return fmt.Errorf("module %q: conflict %d is empty", m.Path, i)
		}
	}
	return nil
}
