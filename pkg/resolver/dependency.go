package resolver

import (
	"github.com/user/scengen/pkg/catalog"
)

// firstMatching returns the first module of mods satisfying req.
func firstMatching(req catalog.Requirement, mods []*catalog.Module) *catalog.Module {
	for _, m := range mods {
		if m.MatchesAttributes(req) {
			return m
		}
	}
	return nil
}

// requiredModules returns the modules to add so that every requirement of
// requiredBy is met, in requirement order. ok is false when a requirement
// cannot be met; additions are then meaningless and the attempt fails.
//
// A requirement met by requiredBy itself needs no addition. Additions are
// visible to later requirements of the same call but their own requirements
// are not expanded.
func (a *attempt) requiredModules(requiredBy *catalog.Module, all []*catalog.Module) (additions []*catalog.Module, ok bool) {
	additions = []*catalog.Module{}
	for _, req := range requiredBy.Requires {
		log := a.log.WithField("required_by", requiredBy.Path)
		log.Debugf("Resolving dependency: %s", req)

		if requiredBy.MatchesAttributes(req) {
			log.Debugf("Dependency satisfied by the module itself: %s", requiredBy.PrintableName())
			continue
		}
		running := append(a.modules(), additions...)
		if existing := firstMatching(req, running); existing != nil {
			log.Debugf("Dependency satisfied by previously selected module: %s", existing.PrintableName())
			continue
		}

		// Candidates are checked against the earlier additions and the
		// dependent as well as the running selection, so the final
		// selection stays pairwise conflict-free. A dependent that conflicts
		// with every candidate fails the attempt.
		against := append(running, requiredBy)
		candidates := a.r.shuffled(all)
		candidates = keep(candidates, func(m *catalog.Module) bool {
			return m.MatchesAttributes(req)
		})
		candidates = keep(candidates, func(m *catalog.Module) bool {
			return !a.conflictsWithList(m, against)
		})
		log.Debugf("Filtered to modules that satisfy the dependency without conflicts (n=%d)", len(candidates))

		if len(candidates) == 0 {
			log.Errorf("Could not satisfy dependency %s of %s", req, requiredBy.PrintableName())
			return nil, false
		}

		add := candidates[0]
		log.Infof("Adding module %s to satisfy dependency of %s", add.PrintableName(), requiredBy.PrintableName())
		additions = append(additions, add)
	}
	return additions, true
}

// Unmet is a requirement of a selected module that no selected module meets.
type Unmet struct {
	Selection   Selection
	Requirement catalog.Requirement
}

// UnmetRequirements lists requirements of res's modules left unsatisfied by
// the whole selection. Requirements of primaries are always met by a
// successful resolution; those of dependency additions may not be, since
// additions are not expanded.
func UnmetRequirements(res *Result) []Unmet {
	mods := res.Modules()
	var out []Unmet
	for _, s := range res.Selections {
		for _, req := range s.Module.Requires {
			if firstMatching(req, mods) == nil {
				out = append(out, Unmet{Selection: s, Requirement: req})
			}
		}
	}
	return out
}
