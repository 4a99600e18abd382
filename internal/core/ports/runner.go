// internal/core/ports/runner.go
package ports

import (
	"context"
	"strings"

	"webenum/internal/core/domain"
)

// Command is one external tool invocation.
type Command struct {
	// Name es el binario a ejecutar (nombre en PATH o ruta absoluta)
	Name string

	// Args argumentos en orden, sin shell quoting
	Args []string
}

// String returns the command line as printed to the operator.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CommandRunner es el port para ejecutar herramientas externas.
type CommandRunner interface {
	// Execute runs cmd. When outputPath is non-empty stdout is streamed line
	// by line into it; otherwise stdout is buffered into the result. Failures
	// are reported through the result, never by panicking.
	Execute(ctx context.Context, cmd Command, description, outputPath string) domain.StageResult
}

// ToolChecker resolves the required executables before the pipeline starts.
type ToolChecker interface {
	// Check returns the subset of names that could not be resolved.
	Check(names []string) []string
}
