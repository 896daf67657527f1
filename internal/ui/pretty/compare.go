package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/marky/pkg/reference"
)

// FormatComparison shows marky's HTML and the reference HTML side by side
// followed by a verdict line.
func (s *Styles) FormatComparison(cmp *reference.Comparison, flavor string) string {
	left := s.Pane.Render(s.PaneTitle.Render("marky") + "\n" + strings.TrimRight(cmp.Marky, "\n"))
	right := s.Pane.Render(s.PaneTitle.Render(flavor) + "\n" + strings.TrimRight(cmp.Reference, "\n"))

	var builder strings.Builder
	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	builder.WriteString("\n")
	if cmp.Equal {
		builder.WriteString(s.DiffAdd.Render("outputs agree after normalization"))
	} else {
		builder.WriteString(s.DiffRemove.Render("outputs differ"))
	}
	builder.WriteString("\n")
	return builder.String()
}
