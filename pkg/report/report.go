package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/scengen/pkg/catalog"
	"github.com/user/scengen/pkg/resolver"
	"github.com/user/scengen/pkg/scenario"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	depStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Summary writes a human-readable view of a resolution. styled enables
// terminal colours.
func Summary(w io.Writer, scn *scenario.Scenario, res *resolver.Result, styled bool) error {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	var sb strings.Builder
	sb.WriteString(render(titleStyle, fmt.Sprintf("Scenario %s (%d modules)", scn.Name, len(res.Selections))))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", render(labelStyle, "Run ID:   "), res.RunID))
	sb.WriteString(fmt.Sprintf("%s %d\n", render(labelStyle, "Attempts: "), res.Attempts))
	sb.WriteString(fmt.Sprintf("%s %d\n", render(labelStyle, "Conflicts:"), res.Conflicts))
	if len(scn.Attributes) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", render(labelStyle, "Base:     "), catalog.Requirement(scn.Attributes)))
	}
	sb.WriteString("\n")

	for i, s := range res.Selections {
		line := fmt.Sprintf("%2d. [%s] %s", i+1, s.Module.Type, s.Module.PrintableName())
		if s.IsDependency() {
			line = render(depStyle, fmt.Sprintf("%s  (dependency of %s)", line, s.RequiredBy.PrintableName()))
		}
		sb.WriteString(line + "\n")
		if s.Module.Name != "" && s.Module.Name != s.Module.Path {
			sb.WriteString(fmt.Sprintf("      %s\n", render(labelStyle, s.Module.Path)))
		}
	}

	if unmet := resolver.UnmetRequirements(res); len(unmet) > 0 {
		sb.WriteString("\n")
		for _, u := range unmet {
			sb.WriteString(render(warnStyle, fmt.Sprintf("Unexpanded requirement %s of %s", u.Requirement, u.Selection.Module.PrintableName())))
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
