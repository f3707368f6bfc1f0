package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/scengen/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// SelectorSuffix marks a filter's type as a selector for a catalog type.
const SelectorSuffix = "_selecter"

// SelectorFor returns the selector form of a catalog module type.
func SelectorFor(moduleType string) string {
	if strings.HasSuffix(moduleType, SelectorSuffix) {
		return moduleType
	}
	return moduleType + SelectorSuffix
}

// Filter requests one slot of the scenario: exactly one module of the
// selected type whose attributes satisfy the requirement.
type Filter struct {
	ModuleType string
	Attributes catalog.Requirement
}

// Selects is an exact-string discriminator on the module type.
func (f Filter) Selects(m *catalog.Module) bool {
	return m.Type+SelectorSuffix == f.ModuleType
}

// Matches reports whether m could fill this filter.
func (f Filter) Matches(m *catalog.Module) bool {
	return f.Selects(m) && m.MatchesAttributes(f.Attributes)
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s", f.ModuleType, f.Attributes)
}

// Scenario is a named target system and its ordered filters. Selections holds
// the result of the last successful resolution.
type Scenario struct {
	Name       string
	Attributes map[string]string
	Filters    []Filter
	Selections []*catalog.Module
}

// New creates a scenario with no selections.
func New(name string, attributes map[string]string, filters []Filter) *Scenario {
	return &Scenario{
		Name:       name,
		Attributes: attributes,
		Filters:    filters,
		Selections: []*catalog.Module{},
	}
}

type fileFilter struct {
	Type       string            `yaml:"type"`
	Attributes map[string]string `yaml:"attributes"`
}

type file struct {
	Name       string            `yaml:"name"`
	Attributes map[string]string `yaml:"attributes"`
	Modules    []fileFilter      `yaml:"modules"`
}

// Load reads a scenario definition from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// Parse decodes a scenario definition. defaultName is used when the document
// does not name the scenario.
func Parse(data []byte, defaultName string) (*Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	name := f.Name
	if name == "" {
		name = defaultName
	}

	filters := make([]Filter, 0, len(f.Modules))
	for i, ff := range f.Modules {
		if strings.TrimSpace(ff.Type) == "" {
			return nil, fmt.Errorf("scenario %s: module %d has no type", name, i)
		}
		filters = append(filters, Filter{
			ModuleType: SelectorFor(strings.TrimSpace(ff.Type)),
			Attributes: catalog.Requirement(ff.Attributes),
		})
	}
	return New(name, f.Attributes, filters), nil
}
