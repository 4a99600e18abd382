// internal/adapters/analysis/disabled.go
package analysis

import (
	"context"

	"webenum/internal/core/domain"
)

// Disabled is the Analyzer used when analysis was not requested or has no
// credential.
type Disabled struct{}

func (Disabled) Name() string  { return "disabled" }
func (Disabled) Enabled() bool { return false }

func (Disabled) Analyze(ctx context.Context, prompt string) (string, error) {
	return "", domain.ErrAnalysisDisabled
}
