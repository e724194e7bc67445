package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/mailscout/mailscout/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeResult(md, run)
	w.writeFindings(md, run)

	return len(md.String()), md.Build()
}

// WriteHistory outputs past runs as a Markdown table.
func (w *MarkdownWriter) WriteHistory(runs []model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Extraction History")
	md.PlainText("")

	if len(runs) == 0 {
		md.PlainText("No runs recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(runs))
	for i, run := range runs {
		found := "no"
		if run.Found {
			found = "yes"
		}
		emails := run.Emails
		if emails == "" {
			emails = "-"
		}
		rows[i] = []string{
			strconv.FormatInt(run.ID, 10),
			"`" + run.StartURL + "`",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			found,
			emails,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Start URL", "Date", "Found", "Emails"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// writeHeader writes the run header with basic information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run) {
	md.H1("Email Extraction Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + run.StartURL + "`"},
			{"Date", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages Fetched", strconv.Itoa(run.PagesFetched)},
			{"Duration", run.Duration.String()},
			{"Status", w.getStatusText(run)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on run state.
func (w *MarkdownWriter) getStatusText(run *model.Run) string {
	if run.ErrorMessage != "" {
		return "❌ Error - " + run.ErrorMessage
	}
	if run.Found {
		return "✅ Found"
	}
	return "⚪ No addresses found"
}

// writeResult writes the extraction outcome with an appropriate alert.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, run *model.Run) {
	md.H2("Result")
	md.PlainText("")

	switch {
	case run.ErrorMessage != "":
		md.Warningf("Extraction failed: %s", run.ErrorMessage)
	case run.Found:
		md.Tip("Found addresses via " + run.Locations + ".")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightText, run.Emails)
	default:
		md.Note("No email addresses were found on this site.")
	}
	md.PlainText("")
}

// writeFindings writes the per-location breakdown.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, run *model.Run) {
	if len(run.Findings) == 0 {
		return
	}

	md.H2("Findings")
	md.PlainText("")

	rows := make([][]string, len(run.Findings))
	for i, f := range run.Findings {
		rows[i] = []string{f.Emails, f.Location}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Emails", "Location"},
		Rows:   rows,
	})
	md.PlainText("")
}
