// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio comunes.
var (
	// Target errors
	ErrEmptyTarget            = errors.New("target cannot be empty")
	ErrInvalidDomain          = errors.New("invalid domain format")
	ErrMultiDomainUnsupported = errors.New("multi-domain scanning not yet implemented")

	// Environment errors
	ErrToolsMissing = errors.New("required tools missing")

	// Stage errors
	ErrMissingInput = errors.New("input file not found")
	ErrStageFailed  = errors.New("stage failed")
	ErrSpawnFailed  = errors.New("process could not be started")
	ErrInterrupted  = errors.New("interrupted by user")

	// Analysis errors
	ErrAnalysisDisabled = errors.New("analysis disabled")
	ErrNoURLs           = errors.New("no URLs to analyze")
)

// StageError ties a pipeline failure to the stage that produced it.
type StageError struct {
	Stage Stage
	Tool  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("%s (%s): %v", e.Stage, e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// MissingInputError builds the error returned when a stage input file is
// absent.
func MissingInputError(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, path)
}
