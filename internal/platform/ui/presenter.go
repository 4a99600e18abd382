// internal/platform/ui/presenter.go
package ui

import (
	"time"
)

// InstallHint is shown when required tools are missing.
const InstallHint = "https://github.com/projectdiscovery"

// Presenter define la interfaz para presentar la ejecución del pipeline en
// la terminal. Implementations must be safe to call from the goroutine that
// runs the pipeline only; no concurrent calls are made.
type Presenter interface {
	// Banner muestra el banner con target, salida y proxy
	Banner(info RunInfo)

	// OutputDir reports the output directory creation (or its simulation)
	OutputDir(path string, dryRun bool)

	// ToolStatus reports one tool as found or missing
	ToolStatus(name string, found bool)

	// StageHeader notifica el inicio de un stage
	StageHeader(info StageInfo)

	// Section marks a post-processing block ("BONUS: LLM ANALYSIS")
	Section(title string)

	// Command muestra el comando completo antes de ejecutarlo
	Command(description, command, outputPath string)

	// DryRun muestra un mensaje de simulación
	DryRun(msg string)

	// StreamLine echoes one line of tool output
	StreamLine(line string)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Success muestra un mensaje de éxito
	Success(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Recap muestra las estadísticas por stage
	Recap(info RecapInfo)

	// Complete muestra el bloque final de una ejecución exitosa
	Complete(info CompleteInfo)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la ejecución
type RunInfo struct {
	Target    string
	OutputDir string
	Proxy     string
	DryRun    bool
	Version   string
}

// StageInfo contiene información de un stage
type StageInfo struct {
	Number int
	Total  int
	Title  string
	Tool   string
}

// StatLine is one row of the recap.
type StatLine struct {
	Name  string
	Count int
}

// RecapInfo contiene las estadísticas finales del resumen
type RecapInfo struct {
	Target    string
	Timestamp time.Time
	Stats     []StatLine
}

// CompleteInfo describe el final de una ejecución exitosa
type CompleteInfo struct {
	OutputDir  string
	URLsFile   string
	UniqueURLs int
	Duration   time.Duration
	DryRun     bool
}
