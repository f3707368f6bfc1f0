package resolver

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestResolutionErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *ResolutionError
		want []string
	}{
		{
			name: "defect on filter",
			err:  &ResolutionError{Kind: ConfigurationDefect, Scenario: "web", Filter: 2, Attempts: 1},
			want: []string{"scenario web", "filter 2", "no conflicts occurred"},
		},
		{
			name: "exhaustion on dependency",
			err:  &ResolutionError{Kind: ConflictExhaustion, Scenario: "web", Filter: 0, Module: "Apache", Attempts: 11, Conflicts: 3},
			want: []string{"dependencies of Apache", "11 attempt(s)", "3 conflict(s)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, w := range tt.want {
				if !strings.Contains(msg, w) {
					t.Errorf("expected %q in %q", w, msg)
				}
			}
		})
	}
}

func TestResolutionErrorIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolve: %w", &ResolutionError{Kind: ConflictExhaustion})
	if !errors.Is(err, ErrConflictExhaustion) {
		t.Error("expected wrapped error to match its sentinel")
	}
	if errors.Is(err, ErrConfigurationDefect) {
		t.Error("kinds must not cross-match")
	}
	if ConfigurationDefect.String() != "configuration defect" || ErrorKind(0).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
