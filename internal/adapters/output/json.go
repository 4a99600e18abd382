// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"webenum/internal/core/domain"
)

// JSONExporter escribe summary.json.
type JSONExporter struct {
	pretty bool
}

// NewJSONExporter crea un exporter JSON. pretty indenta con dos espacios.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{pretty: pretty}
}

func (e *JSONExporter) Name() string     { return "json" }
func (e *JSONExporter) FileName() string { return domain.SummaryFile }

// Export escribe el resumen en dir/summary.json, reemplazando uno anterior.
func (e *JSONExporter) Export(summary domain.Summary, dir string) (string, error) {
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

// ExportToWriter codifica el resumen en w. Key order comes from
// domain.Summary.MarshalJSON and survives indentation.
func (e *JSONExporter) ExportToWriter(summary domain.Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
