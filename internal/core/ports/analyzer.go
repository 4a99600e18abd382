// internal/core/ports/analyzer.go
package ports

import "context"

// Analyzer submits a prompt to a text completion service and returns the
// raw response text.
type Analyzer interface {
	// Name identifies the backend in logs (e.g. "openai", "disabled")
	Name() string

	// Enabled reports whether Analyze can do anything useful.
	Enabled() bool

	Analyze(ctx context.Context, prompt string) (string, error)
}
