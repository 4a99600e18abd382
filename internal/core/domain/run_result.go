// internal/core/domain/run_result.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StageResult is what the process runner reports for one command.
type StageResult struct {
	// Success es true cuando el proceso terminó con código 0 (o en dry-run)
	Success bool

	// OutputPath archivo donde se escribió stdout, vacío en modo buffered
	OutputPath string

	// ExitCode del proceso; -1 si nunca terminó normalmente
	ExitCode int

	// Lines número de líneas de stdout transmitidas
	Lines int

	// Stdout capturado en modo buffered
	Stdout string

	// Stderr capturado
	Stderr string

	// Err causa del fallo (missing input, spawn, exit status, cancelación)
	Err error

	// DryRun indica que el comando no se ejecutó
	DryRun bool
}

// Transition records one state change of the pipeline.
type Transition struct {
	From RunState
	To   RunState
	At   time.Time
}

// Warning representa una advertencia no crítica durante la ejecución.
type Warning struct {
	Source    string
	Message   string
	Timestamp time.Time
}

// RunResult representa el resultado completo de una ejecución del pipeline.
type RunResult struct {
	// ID identificador único de la ejecución
	ID string

	Target Target
	DryRun bool

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// State final (Done o Failed)
	State RunState

	// FailedStage es el stage que detuvo el pipeline, 0 si ninguno
	FailedStage Stage

	// History of state changes in order
	Transitions []Transition

	// Summary es nil en dry-run o si el pipeline falló
	Summary *Summary

	// URLCount número de URLs únicas en el archivo para Burp
	URLCount int

	// AnalysisPath se rellena cuando el análisis se guardó
	AnalysisPath string

	Warnings []Warning

	// Err causa del fallo
	Err error
}

// NewRunResult crea un nuevo resultado de ejecución.
func NewRunResult(target Target, dryRun bool) *RunResult {
	return &RunResult{
		ID:        uuid.NewString(),
		Target:    target,
		DryRun:    dryRun,
		StartTime: time.Now(),
		State:     StateIdle,
		Warnings:  []Warning{},
	}
}

// AddWarning añade una advertencia al resultado.
func (r *RunResult) AddWarning(source, message string) {
	r.Warnings = append(r.Warnings, Warning{
		Source:    source,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Finalize marca la ejecución como completada en end.
func (r *RunResult) Finalize(end time.Time) {
	r.EndTime = end
	r.Duration = end.Sub(r.StartTime)
}

// Succeeded reports whether the pipeline reached Done.
func (r *RunResult) Succeeded() bool {
	return r.State == StateDone
}

// ExitCode maps the outcome to the process exit status.
func (r *RunResult) ExitCode() int {
	if r.Succeeded() {
		return 0
	}
	return 1
}

// States returns the visited states in order, starting with Idle.
func (r *RunResult) States() []RunState {
	states := []RunState{StateIdle}
	for _, t := range r.Transitions {
		states = append(states, t.To)
	}
	return states
}

// String retorna un resumen legible del resultado.
func (r *RunResult) String() string {
	return fmt.Sprintf(
		"RunResult{target=%s, state=%s, dry_run=%t, urls=%d, duration=%s}",
		r.Target.Root,
		r.State,
		r.DryRun,
		r.URLCount,
		r.Duration,
	)
}
