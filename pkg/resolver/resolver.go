package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/user/scengen/pkg/catalog"
	"github.com/user/scengen/pkg/metrics"
	"github.com/user/scengen/pkg/scenario"
)

const (
	DefaultRetryLimit = 10
	DefaultRetryDelay = time.Second
)

// Source is anything that can enumerate catalog modules. *catalog.Catalog
// satisfies it.
type Source interface {
	Modules() []*catalog.Module
}

// Selection is one module of a resolution.
type Selection struct {
	Module *catalog.Module
	// Filter is the index of the scenario filter that caused the selection.
	Filter int
	// RequiredBy is the primary module this one was added for, nil for the
	// filter's own selection.
	RequiredBy *catalog.Module
}

// IsDependency reports whether the module was added to satisfy another
// module's requirement.
func (s Selection) IsDependency() bool {
	return s.RequiredBy != nil
}

// Result is a successful resolution.
type Result struct {
	RunID      string
	Selections []Selection
	// Attempts counts every attempt made, the successful one included.
	Attempts int
	// Conflicts is the conflict counter of the successful attempt.
	Conflicts int
}

// Modules returns the selected modules in order; dependencies precede the
// module that required them.
func (r *Result) Modules() []*catalog.Module {
	out := make([]*catalog.Module, len(r.Selections))
	for i, s := range r.Selections {
		out[i] = s.Module
	}
	return out
}

// Resolver turns a scenario's filters into a conflict-free module list by
// greedy random choice, restarting the whole attempt when conflicts leave a
// filter unsatisfiable. A Resolver is not safe for concurrent use.
type Resolver struct {
	rng        *rand.Rand
	retryLimit int
	retryDelay time.Duration
	log        logrus.FieldLogger
	metrics    *metrics.Metrics
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRand sets the shuffle source.
func WithRand(rng *rand.Rand) Option {
	return func(r *Resolver) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSeed seeds the shuffle source for reproducible resolutions.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithRetryLimit sets how many times a conflicting attempt is restarted.
func WithRetryLimit(n int) Option {
	return func(r *Resolver) {
		if n < 0 {
			n = 0
		}
		r.retryLimit = n
	}
}

// WithRetryDelay sets the fixed pause before each retry.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Resolver) {
		r.retryDelay = d
	}
}

// WithLogger sets the diagnostics sink.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics records attempts, conflicts and outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New creates a Resolver. Without options it uses a time-seeded shuffle, the
// default retry policy and a logger that discards output.
func New(opts ...Option) *Resolver {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	r := &Resolver{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		retryLimit: DefaultRetryLimit,
		retryDelay: DefaultRetryDelay,
		log:        silent,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RetryLimit returns the configured retry limit.
func (r *Resolver) RetryLimit() int {
	return r.retryLimit
}

// Resolve selects modules for every filter of scn from src. On success
// scn.Selections is replaced by the selected modules. Failures are returned
// as *ResolutionError; cancellation of ctx is only observed between attempts.
func (r *Resolver) Resolve(ctx context.Context, scn *scenario.Scenario, src Source) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := r.log.WithFields(logrus.Fields{
		"scenario": scn.Name,
		"run_id":   runID,
	})

	res, err := r.resolve(ctx, log, scn, src.Modules(), 0)
	if err != nil {
		r.metrics.Finished(outcomeOf(err), time.Since(start))
		return nil, err
	}

	res.RunID = runID
	scn.Selections = res.Modules()
	for _, s := range res.Selections {
		r.metrics.Selected(s.Module.Type)
	}
	r.metrics.Finished(metrics.OutcomeResolved, time.Since(start))
	log.WithFields(logrus.Fields{
		"attempts": res.Attempts,
		"modules":  len(res.Selections),
	}).Info("Scenario resolved")
	return res, nil
}

// resolve runs attempt number idx (zero-based). A retryable failure recurses
// into idx+1, bounded by the retry limit.
func (r *Resolver) resolve(ctx context.Context, log logrus.FieldLogger, scn *scenario.Scenario, all []*catalog.Module, idx int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("attempt %d: %w", idx+1, err)
	}
	r.metrics.Attempt()

	a := &attempt{
		r:     r,
		index: idx,
		log:   log.WithField("attempt", idx+1),
	}

	for i, f := range scn.Filters {
		flog := a.log.WithField("filter", i)

		candidates := r.shuffled(all)
		candidates = keep(candidates, f.Selects)
		candidates = keep(candidates, func(m *catalog.Module) bool {
			return m.MatchesAttributes(f.Attributes)
		})
		flog.Debugf("Filtered to modules matching %s (n=%d)", f, len(candidates))

		running := a.modules()
		candidates = keep(candidates, func(m *catalog.Module) bool {
			return !a.conflictsWithList(m, running)
		})

		if len(candidates) == 0 {
			flog.Error("Could not find a matching module, check the scenario definition")
			return r.retry(ctx, log, scn, all, a, &ResolutionError{Filter: i})
		}

		selected := candidates[0]
		deps, ok := a.requiredModules(selected, all)
		if !ok {
			return r.retry(ctx, log, scn, all, a, &ResolutionError{Filter: i, Module: selected.PrintableName()})
		}

		for _, d := range deps {
			a.selections = append(a.selections, Selection{Module: d, Filter: i, RequiredBy: selected})
		}
		a.selections = append(a.selections, Selection{Module: selected, Filter: i})
		flog.WithField("module", selected.Path).Infof("Selected module: %s", selected.PrintableName())
	}

	return &Result{
		Selections: a.selections,
		Attempts:   idx + 1,
		Conflicts:  a.conflicts,
	}, nil
}

// retry decides what a failed attempt turns into: a configuration defect
// when no conflict fired, another attempt while the limit allows, otherwise
// conflict exhaustion.
func (r *Resolver) retry(ctx context.Context, log logrus.FieldLogger, scn *scenario.Scenario, all []*catalog.Module, a *attempt, failure *ResolutionError) (*Result, error) {
	failure.Scenario = scn.Name
	failure.Attempts = a.index + 1
	failure.Conflicts = a.conflicts

	if a.conflicts == 0 {
		a.log.Error("Failed to resolve scenario without any module conflict, the scenario or module definitions are wrong")
		failure.Kind = ConfigurationDefect
		return nil, failure
	}

	a.log.Errorf("%d module conflict(s) occurred during scenario generation", a.conflicts)
	if a.index < r.retryLimit {
		a.log.Errorf("Failed to resolve scenario, re-attempting (#%d)", a.index+1)
		if err := r.sleep(ctx, r.retryDelay); err != nil {
			return nil, fmt.Errorf("retry %d: %w", a.index+1, err)
		}
		return r.resolve(ctx, log, scn, all, a.index+1)
	}

	a.log.Errorf("Re-randomised %d time(s) without finding a conflict-free selection", r.retryLimit)
	failure.Kind = ConflictExhaustion
	return nil, failure
}

// shuffled returns a shuffled copy; the catalog slice itself is never
// reordered.
func (r *Resolver) shuffled(mods []*catalog.Module) []*catalog.Module {
	out := make([]*catalog.Module, len(mods))
	copy(out, mods)
	r.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// keep filters mods in place and returns the retained prefix.
func keep(mods []*catalog.Module, pred func(*catalog.Module) bool) []*catalog.Module {
	out := mods[:0]
	for _, m := range mods {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrConfigurationDefect):
		return metrics.OutcomeConfigurationDefect
	case errors.Is(err, ErrConflictExhaustion):
		return metrics.OutcomeConflictExhaustion
	default:
		return metrics.OutcomeCanceled
	}
}
