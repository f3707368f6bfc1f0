package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the read-only set of modules a scenario is resolved against.
type Catalog struct {
	modules []*Module
	byPath  map[string]*Module
}

// New builds a catalog from already-parsed modules, keeping their order.
func New(mods ...*Module) (*Catalog, error) {
	c := &Catalog{
		modules: make([]*Module, 0, len(mods)),
		byPath:  make(map[string]*Module, len(mods)),
	}
	for _, m := range mods {
		if err := c.add(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(m *Module) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if _, dup := c.byPath[m.Path]; dup {
		return fmt.Errorf("duplicate module path %q", m.Path)
	}
	c.modules = append(c.modules, m)
	c.byPath[m.Path] = m
	return nil
}

// Modules returns a copy of the module list in declaration order.
func (c *Catalog) Modules() []*Module {
	out := make([]*Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// Get looks a module up by path.
func (c *Catalog) Get(path string) (*Module, bool) {
	m, ok := c.byPath[path]
	return m, ok
}

// OfType returns the modules of the given type in declaration order.
func (c *Catalog) OfType(moduleType string) []*Module {
	var out []*Module
	for _, m := range c.modules {
		if m.Type == moduleType {
			out = append(out, m)
		}
	}
	return out
}

// Types returns the sorted distinct module types.
func (c *Catalog) Types() []string {
	seen := make(map[string]bool)
	var types []string
	for _, m := range c.modules {
		if !seen[m.Type] {
			seen[m.Type] = true
			types = append(types, m.Type)
		}
	}
	sort.Strings(types)
	return types
}

// LoadDirectory reads every .yaml/.yml file under dir as one module
// definition. Modules without an explicit path are identified by their file
// path relative to dir, without extension.
func LoadDirectory(dir string) (*Catalog, error) {
	c := &Catalog{byPath: make(map[string]*Module)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		m, err := loadFile(path)
		if err != nil {
			return err
		}
		if m.Path == "" {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			m.Path = filepath.ToSlash(strings.TrimSuffix(rel, ext))
		}
		if err := c.add(m); err != nil {
			return fmt.Errorf("failed to load module from %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory %q: %w", dir, err)
	}
	return c, nil
}

func loadFile(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Module
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &m, nil
}
