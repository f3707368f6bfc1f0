package resolver

import (
	"github.com/sirupsen/logrus"
	"github.com/user/scengen/pkg/catalog"
)

// Conflicts reports whether a and b cannot coexist. Conflict declarations
// are not guaranteed to be symmetric, so both directions are asked.
func Conflicts(a, b *catalog.Module) bool {
	return a.ConflictsWith(b) || b.ConflictsWith(a)
}

// attempt is the state owned by a single resolution attempt.
type attempt struct {
	r          *Resolver
	index      int
	log        logrus.FieldLogger
	conflicts  int
	selections []Selection
}

func (a *attempt) modules() []*catalog.Module {
	out := make([]*catalog.Module, len(a.selections))
	for i, s := range a.selections {
		out[i] = s.Module
	}
	return out
}

// conflictsWithList reports whether candidate conflicts with any module of
// list. Every conflicting pair is counted, so a candidate excluded by three
// modules adds three to the attempt's counter.
func (a *attempt) conflictsWithList(candidate *catalog.Module, list []*catalog.Module) bool {
	found := false
	for _, prev := range list {
		if !Conflicts(candidate, prev) {
			continue
		}
		a.log.Debugf("Excluding incompatible module: %s (conflicts with %s)", candidate.Path, prev.Path)
		a.conflicts++
		a.r.metrics.Conflict()
		found = true
	}
	return found
}

// Violation is a pair of selected modules that conflict.
type Violation struct {
	A, B *catalog.Module
}

// Verify returns every conflicting pair in mods, checking both directions.
// A valid resolution yields none.
func Verify(mods []*catalog.Module) []Violation {
	var out []Violation
	for i := range mods {
		for j := i + 1; j < len(mods); j++ {
			if Conflicts(mods[i], mods[j]) {
				out = append(out, Violation{A: mods[i], B: mods[j]})
			}
		}
	}
	return out
}
