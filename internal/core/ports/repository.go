// internal/core/ports/repository.go
package ports

import (
	"context"
	"time"

	"webenum/internal/core/domain"
)

// Repository es el port para el histórico de ejecuciones.
type Repository interface {
	// SaveRun guarda el resultado de una ejecución finalizada
	SaveRun(ctx context.Context, result *domain.RunResult) error

	// ListRuns lista ejecuciones, las más recientes primero
	ListRuns(ctx context.Context, filter RunFilter) ([]RunRecord, error)

	// Close cierra la conexión con el repositorio
	Close() error
}

// RunRecord is the persisted view of a RunResult.
type RunRecord struct {
	ID          string
	Target      string
	StartTime   time.Time
	EndTime     time.Time
	DryRun      bool
	State       domain.RunState
	FailedStage string
	URLCount    int
	Error       string

	// Statistics per stage name, in pipeline order
	Statistics []domain.StageCount
}

// Succeeded reports whether the recorded run reached Done.
func (r RunRecord) Succeeded() bool {
	return r.State == domain.StateDone
}

// RunFilter define filtros para listar ejecuciones.
type RunFilter struct {
	// Target filtrar por dominio objetivo (vacío = todos)
	Target string

	// Limit número máximo de resultados (0 = 20)
	Limit int
}
