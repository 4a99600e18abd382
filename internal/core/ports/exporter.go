// internal/core/ports/exporter.go
package ports

import (
	"io"

	"webenum/internal/core/domain"
)

// Exporter es el port para exportar el resumen en diferentes formatos.
type Exporter interface {
	// Name retorna el nombre del exporter (ej: "json", "markdown")
	Name() string

	// FileName is the canonical file name written under the output dir.
	FileName() string

	// Export escribe el resumen en dir/FileName() y retorna la ruta
	Export(summary domain.Summary, dir string) (string, error)
}

// WriterExporter permite exportar a cualquier io.Writer.
type WriterExporter interface {
	Exporter

	ExportToWriter(summary domain.Summary, w io.Writer) error
}
