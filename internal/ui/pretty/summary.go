package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/marky/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Built 12 files, 3 written, 1 failed (40ms)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Warning.Render("No source files found") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("Built %d %s", stats.FilesRendered, plural(stats.FilesRendered))),
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d written", stats.FilesWritten))
	} else {
		parts = append(parts, s.Dim.Render("nothing changed"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + s.Dim.Render(" ("+formatDuration(stats.Duration)+")") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files rendered:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)) + "\n")
	builder.WriteString("  Files written:     " +
		s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString("  Elements:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.Elements)) + "\n")
	builder.WriteString("  Duration:          " +
		s.SummaryValue.Render(formatDuration(stats.Duration)) + "\n")

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Build finished with errors"))
	} else {
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}
