package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/marky/pkg/runner"
)

const tablePadding = 2

// Page statuses shown in the STATUS column.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusFailed    = "failed"
)

// FormatPageTable lists every outcome of a build: source, output page,
// element count and status. Failed rows carry the error message instead
// of an output path.
func (s *Styles) FormatPageTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	header := []string{"SOURCE", "OUTPUT", "ELEMENTS", "STATUS"}
	rows := make([][]string, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, s.pageRow(outcome))
	}

	widths := make([]int, len(header))
	for col, title := range header {
		widths[col] = len(title)
	}
	for _, row := range rows {
		for col, cell := range row {
			widths[col] = max(widths[col], lipgloss.Width(cell))
		}
	}

	var builder strings.Builder
	styledHeader := make([]string, len(header))
	for col, title := range header {
		styledHeader[col] = s.TableHeader.Render(title)
	}
	writeRow(&builder, styledHeader, widths)
	for _, row := range rows {
		writeRow(&builder, row, widths)
	}
	return builder.String()
}

func (s *Styles) pageRow(outcome runner.FileOutcome) []string {
	source := s.FilePath.Render(outcome.Source.Rel)
	if outcome.Error != nil {
		return []string{source, s.Dim.Render(outcome.Error.Error()), "-", s.Failure.Render(StatusFailed)}
	}

	page := outcome.Page
	status := s.Dim.Render(StatusUnchanged)
	if page.Written {
		status = s.Success.Render(StatusWritten)
	}
	return []string{source, page.Output, strconv.Itoa(page.Elements), status}
}

func writeRow(builder *strings.Builder, cells []string, widths []int) {
	for col, cell := range cells {
		builder.WriteString(cell)
		if col == len(cells)-1 {
			break
		}
		builder.WriteString(strings.Repeat(" ", widths[col]-lipgloss.Width(cell)+tablePadding))
	}
	builder.WriteString("\n")
}
