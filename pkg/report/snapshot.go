package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/user/scengen/pkg/resolver"
	"github.com/user/scengen/pkg/scenario"
)

// Roles of a snapshot entry.
const (
	RolePrimary    = "primary"
	RoleDependency = "dependency"
)

// Entry is one selected module in a snapshot.
type Entry struct {
	Path       string `json:"path"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type"`
	Role       string `json:"role"`
	Filter     int    `json:"filter"`
	RequiredBy string `json:"required_by,omitempty"`
}

// Snapshot is the persisted record of a resolution.
type Snapshot struct {
	Scenario   string            `json:"scenario"`
	Attributes map[string]string `json:"attributes,omitempty"`
	RunID      string            `json:"run_id"`
	Attempts   int               `json:"attempts"`
	Conflicts  int               `json:"conflicts"`
	CreatedAt  time.Time         `json:"created_at"`
	Modules    []Entry           `json:"modules"`
}

// NewSnapshot records res for scn.
func NewSnapshot(scn *scenario.Scenario, res *resolver.Result) Snapshot {
	snap := Snapshot{
		Scenario:   scn.Name,
		Attributes: scn.Attributes,
		RunID:      res.RunID,
		Attempts:   res.Attempts,
		Conflicts:  res.Conflicts,
		CreatedAt:  time.Now().UTC(),
		Modules:    make([]Entry, 0, len(res.Selections)),
	}
	for _, s := range res.Selections {
		e := Entry{
			Path:   s.Module.Path,
			Name:   s.Module.Name,
			Type:   s.Module.Type,
			Role:   RolePrimary,
			Filter: s.Filter,
		}
		if s.IsDependency() {
			e.Role = RoleDependency
			e.RequiredBy = s.RequiredBy.Path
		}
		snap.Modules = append(snap.Modules, e)
	}
	return snap
}

// SaveSnapshot writes the resolution as indented JSON.
func SaveSnapshot(path string, scn *scenario.Scenario, res *resolver.Result) error {
	data, err := json.MarshalIndent(NewSnapshot(scn, res), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Delta lists how a resolution changed relative to a baseline, by module
// path.
type Delta struct {
	Added   []Entry
	Removed []Entry
	Kept    []Entry
}

// Diff compares current against baseline.
func Diff(baseline, current Snapshot) Delta {
	var d Delta
	before := make(map[string]bool, len(baseline.Modules))
	for _, e := range baseline.Modules {
		before[e.Path] = true
	}
	after := make(map[string]bool, len(current.Modules))
	for _, e := range current.Modules {
		after[e.Path] = true
		if before[e.Path] {
			d.Kept = append(d.Kept, e)
		} else {
			d.Added = append(d.Added, e)
		}
	}
	for _, e := range baseline.Modules {
		if !after[e.Path] {
			d.Removed = append(d.Removed, e)
		}
	}
	return d
}
