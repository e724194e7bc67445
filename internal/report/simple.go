package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mailscout/mailscout/internal/model"
)

// SimpleWriter outputs human-readable text results.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-location finding breakdown.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with the finding breakdown.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run in human-readable format.
func (w *SimpleWriter) Write(run *model.Run) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, run)
	w.writeResult(&sb, run)
	if w.verbose {
		w.writeFindings(&sb, run)
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory outputs past runs as a plain text table.
func (w *SimpleWriter) WriteHistory(runs []model.Run) (int, error) {
	var sb strings.Builder

	if len(runs) == 0 {
		sb.WriteString("No runs recorded.\n")
		return w.output.Write([]byte(sb.String()))
	}

	sb.WriteString(fmt.Sprintf("%-5s %-35s %-20s %-8s %s\n", "ID", "START URL", "DATE", "FOUND", "EMAILS"))
	sb.WriteString(strings.Repeat("-", 90))
	sb.WriteString("\n")

	for _, run := range runs {
		found := "no"
		if run.Found {
			found = "yes"
		}
		emails := run.Emails
		if emails == "" && run.ErrorMessage != "" {
			emails = "error: " + run.ErrorMessage
		}
		sb.WriteString(fmt.Sprintf("%-5d %-35s %-20s %-8s %s\n",
			run.ID,
			truncateString(run.StartURL, 35),
			run.StartedAt.Format("2006-01-02 15:04:05"),
			found,
			truncateString(emails, 60),
		))
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run header with basic information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, run *model.Run) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Start URL:     %s\n", run.StartURL))
	if !run.StartedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Date:          %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST")))
	}
	sb.WriteString(fmt.Sprintf("Pages Fetched: %d\n", run.PagesFetched))
	sb.WriteString(fmt.Sprintf("Duration:      %s\n", run.Duration))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeResult writes the extraction outcome.
func (w *SimpleWriter) writeResult(sb *strings.Builder, run *model.Run) {
	switch {
	case run.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("Status: ERROR - %s\n", run.ErrorMessage))
	case run.Found:
		sb.WriteString(fmt.Sprintf("Emails:    %s\n", run.Emails))
		sb.WriteString(fmt.Sprintf("Found via: %s\n", run.Locations))
	default:
		sb.WriteString("No email addresses found.\n")
	}
	sb.WriteString("\n")
}

// writeFindings writes the per-location breakdown.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, run *model.Run) {
	if len(run.Findings) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, f := range run.Findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", f.Emails))
		sb.WriteString(fmt.Sprintf("    Location: %s\n", f.Location))
	}
	sb.WriteString("\n")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
