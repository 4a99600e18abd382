// internal/core/domain/target.go
package domain

import (
	"fmt"

	"webenum/internal/platform/validator"
)

// Target representa el objetivo del reconocimiento. Exactly one domain is
// scanned per run.
type Target struct {
	// Root es el dominio raíz objetivo, normalizado
	Root string
}

// NewTarget normalizes root and validates it.
func NewTarget(root string) (Target, error) {
	t := Target{Root: validator.NormalizeDomain(root)}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

// Validate verifica que el target sea un dominio y no un sufijo público.
func (t Target) Validate() error {
	if t.Root == "" {
		return ErrEmptyTarget
	}

	if !validator.IsDomain(t.Root) {
		return fmt.Errorf("%w: %s", ErrInvalidDomain, t.Root)
	}

	if validator.IsPublicSuffix(t.Root) {
		return fmt.Errorf("%w: %s is a public suffix", ErrInvalidDomain, t.Root)
	}

	return nil
}

// String retorna una representación legible del target.
func (t Target) String() string {
	return t.Root
}
