package resolver

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes the two ways a resolution can fail.
type ErrorKind int

const (
	// ConfigurationDefect: a filter or dependency could not be satisfied and
	// no conflict fired during the attempt. Never retried.
	ConfigurationDefect ErrorKind = iota + 1
	// ConflictExhaustion: failures kept being caused by conflicts until the
	// retry limit was reached.
	ConflictExhaustion
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationDefect:
		return "configuration defect"
	case ConflictExhaustion:
		return "conflict exhaustion"
	default:
		return "unknown"
	}
}

var (
	ErrConfigurationDefect = errors.New("scenario cannot be resolved: configuration defect")
	ErrConflictExhaustion  = errors.New("scenario cannot be resolved: conflicts persisted across retries")
)

// ResolutionError is returned when a scenario cannot be resolved.
type ResolutionError struct {
	Kind     ErrorKind
	Scenario string
	// Filter is the index of the filter being processed when the last
	// attempt failed.
	Filter int
	// Module is set when the failure was an unsatisfiable dependency of the
	// filter's primary candidate.
	Module string
	// Attempts is the total number of attempts made, the failing one included.
	Attempts int
	// Conflicts is the conflict counter of the last attempt.
	Conflicts int
}

func (e *ResolutionError) Error() string {
	cause := fmt.Sprintf("no module matches filter %d", e.Filter)
	if e.Module != "" {
		cause = fmt.Sprintf("could not satisfy dependencies of %s (filter %d)", e.Module, e.Filter)
	}
	switch e.Kind {
	case ConfigurationDefect:
		return fmt.Sprintf("scenario %s: %s and no conflicts occurred; the scenario or module definitions are wrong", e.Scenario, cause)
	case ConflictExhaustion:
		return fmt.Sprintf("scenario %s: %s after %d attempt(s), %d conflict(s) in the last attempt", e.Scenario, cause, e.Attempts, e.Conflicts)
	default:
		return fmt.Sprintf("scenario %s: %s", e.Scenario, cause)
	}
}

// Is matches the kind sentinels.
func (e *ResolutionError) Is(target error) bool {
	switch target {
	case ErrConfigurationDefect:
		return e.Kind == ConfigurationDefect
	case ErrConflictExhaustion:
		return e.Kind == ConflictExhaustion
	}
	return false
}
