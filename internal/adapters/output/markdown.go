// internal/adapters/output/markdown.go
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"webenum/internal/core/domain"
)

// MarkdownExporter writes summary.md, a human readable rendering of the
// same data as summary.json.
type MarkdownExporter struct{}

// NewMarkdownExporter crea un exporter Markdown.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

func (e *MarkdownExporter) Name() string     { return "markdown" }
func (e *MarkdownExporter) FileName() string { return domain.SummaryMarkdownFile }

// Export escribe el resumen en dir/summary.md.
func (e *MarkdownExporter) Export(summary domain.Summary, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, e.FileName())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := e.ExportToWriter(summary, f); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}

	return path, nil
}

// ExportToWriter renderiza el resumen en w.
func (e *MarkdownExporter) ExportToWriter(summary domain.Summary, w io.Writer) error {
	md := markdown.NewMarkdown(w)

	md.H1("webenum summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + summary.Target + "`"},
			{"Timestamp", summary.Timestamp.Format(time.RFC3339)},
			{"Stages with output", strconv.Itoa(len(summary.Stages))},
		},
	})
	md.PlainText("")

	md.H2("Statistics")
	md.PlainText("")
	if len(summary.Stages) == 0 {
		md.PlainText("No stage output found.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(summary.Stages))
		for _, st := range summary.Stages {
			rows = append(rows, []string{st.Name, strconv.Itoa(st.Count)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Tool", "Lines"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Findings")
	md.PlainText("")
	for _, st := range summary.Stages {
		md.H3(st.Name)
		md.PlainText("")
		if len(st.Sample) == 0 {
			md.PlainText("No results.")
			md.PlainText("")
			continue
		}
		md.BulletList(quoteAll(st.Sample)...)
		md.PlainText("")
		if st.Count > len(st.Sample) {
			md.PlainTextf("... and %d more", st.Count-len(st.Sample))
			md.PlainText("")
		}
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return nil
}

// quoteAll wraps every entry in backticks so URLs render literally.
func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "`" + s + "`"
	}
	return out
}
