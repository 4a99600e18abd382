// internal/core/usecases/pipeline_orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
	"webenum/internal/platform/config"
	"webenum/internal/platform/errors"
	"webenum/internal/platform/logx"
	"webenum/internal/platform/ui"
)

// PipelineOrchestrator coordina la ejecución de los stages en orden estricto.
// Implementa la máquina de estados
// Idle -> Checking -> Stage1..Stage5 -> Aggregating -> AnalyzingOptional -> Done,
// con Failed como estado terminal desde Checking o cualquier stage.
type PipelineOrchestrator struct {
	cfg     config.Config
	stages  []StageDescriptor
	checker ports.ToolChecker

	// Servicios auxiliares
	stageRunner *StageRunner
	aggregator  *ResultAggregator
	hook        *AnalysisHook
	repository  ports.Repository

	presenter ui.Presenter
	logger    logx.Logger
	version   string
	now       func() time.Time
}

// PipelineOrchestratorOptions configura el pipeline orchestrator.
type PipelineOrchestratorOptions struct {
	Config  config.Config
	Runner  ports.CommandRunner
	Checker ports.ToolChecker

	// Analyzer nil o deshabilitado omite el análisis
	Analyzer ports.Analyzer

	// Exporters del resumen (summary.json, summary.md)
	Exporters []ports.Exporter

	// Repository opcional para el histórico de ejecuciones
	Repository ports.Repository

	Presenter ui.Presenter
	Logger    logx.Logger

	// Stages nil usa DefaultStages
	Stages []StageDescriptor

	Version string
	Now     func() time.Time
}

// NewPipelineOrchestrator crea una nueva instancia del pipeline orchestrator.
func NewPipelineOrchestrator(opts PipelineOrchestratorOptions) *PipelineOrchestrator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.Stages == nil {
		opts.Stages = DefaultStages()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cfg := opts.Config

	return &PipelineOrchestrator{
		cfg:     cfg,
		stages:  opts.Stages,
		checker: opts.Checker,
		stageRunner: NewStageRunner(StageRunnerOptions{
			Runner:    opts.Runner,
			Stages:    opts.Stages,
			Target:    cfg.Target,
			OutputDir: cfg.OutputDir,
			Proxy:     cfg.Proxy,
			DryRun:    cfg.DryRun,
			ToolPath:  cfg.ToolPath,
			Presenter: opts.Presenter,
			Logger:    opts.Logger,
		}),
		aggregator: NewResultAggregator(AggregatorOptions{
			OutputDir: cfg.OutputDir,
			Stages:    opts.Stages,
			Exporters: opts.Exporters,
			Presenter: opts.Presenter,
			Logger:    opts.Logger,
		}),
		hook: NewAnalysisHook(AnalysisHookOptions{
			Analyzer:  opts.Analyzer,
			OutputDir: cfg.OutputDir,
			MaxURLs:   cfg.Analysis.MaxURLs,
			Timeout:   cfg.Analysis.Timeout,
			Presenter: opts.Presenter,
			Logger:    opts.Logger,
		}),
		repository: opts.Repository,
		presenter:  opts.Presenter,
		logger:     opts.Logger.With("component", "pipeline_orchestrator"),
		version:    opts.Version,
		now:        opts.Now,
	}
}

// Run ejecuta el pipeline completo. The returned result is never nil once
// the target is valid; err is non-nil exactly when the run ended in Failed.
func (p *PipelineOrchestrator) Run(ctx context.Context) (*domain.RunResult, error) {
	target, err := domain.NewTarget(p.cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}

	result := domain.NewRunResult(target, p.cfg.DryRun)
	result.StartTime = p.now()

	p.logger.Info("starting pipeline execution",
		"run_id", result.ID,
		"target", target.Root,
		"output", p.cfg.OutputDir,
		"dry_run", p.cfg.DryRun,
		"stages", len(p.stages),
	)

	p.presenter.Banner(ui.RunInfo{
		Target:    target.Root,
		OutputDir: p.cfg.OutputDir,
		Proxy:     p.cfg.Proxy,
		DryRun:    p.cfg.DryRun,
		Version:   p.version,
	})

	// Checking
	p.transition(result, domain.StateChecking)
	if err := p.checkTools(); err != nil {
		return p.fail(ctx, result, err)
	}
	if err := p.prepareOutputDir(); err != nil {
		return p.fail(ctx, result, err)
	}

	// Stages
	for _, d := range p.stages {
		p.transition(result, domain.StateFor(d.Stage))

		if cause := ctx.Err(); cause != nil {
			result.FailedStage = d.Stage
			return p.fail(ctx, result, &domain.StageError{
				Stage: d.Stage,
				Tool:  d.Tool,
				Err:   fmt.Errorf("%w: %v", domain.ErrInterrupted, context.Cause(ctx)),
			})
		}

		p.presenter.StageHeader(ui.StageInfo{
			Number: d.Stage.Number(),
			Total:  len(p.stages),
			Title:  d.Title,
			Tool:   d.Tool,
		})

		stageStart := p.now()
		res := p.stageRunner.Run(ctx, d)
		if !res.Success {
			if !errors.Is(res.Err, domain.ErrInterrupted) {
				p.presenter.Error(d.Tool + " failed, stopping pipeline")
			}
			cause := res.Err
			if cause == nil {
				cause = domain.ErrStageFailed
			}
			result.FailedStage = d.Stage
			return p.fail(ctx, result, &domain.StageError{Stage: d.Stage, Tool: d.Tool, Err: cause})
		}

		p.logger.Info("stage completed",
			"stage", d.Stage.String(),
			"tool", d.Tool,
			"lines", res.Lines,
			"dry_run", res.DryRun,
			"duration_ms", p.now().Sub(stageStart).Milliseconds(),
		)
	}

	// Aggregating
	p.transition(result, domain.StateAggregating)
	agg, err := p.aggregator.Aggregate(target.Root, p.now(), p.cfg.DryRun)
	if err != nil {
		p.presenter.Error("Aggregation failed: " + err.Error())
		return p.fail(ctx, result, err)
	}
	result.Summary = agg.Summary
	result.URLCount = agg.URLCount

	// AnalyzingOptional
	p.transition(result, domain.StateAnalyzing)
	if p.hook.Enabled() {
		path, err := p.hook.Run(ctx, agg.URLsPath, p.cfg.DryRun)
		if err != nil {
			result.AddWarning("analysis", err.Error())
		}
		result.AnalysisPath = path
	}

	// Done
	p.transition(result, domain.StateDone)
	result.Finalize(p.now())

	p.presenter.Complete(ui.CompleteInfo{
		OutputDir:  p.cfg.OutputDir,
		URLsFile:   agg.URLsPath,
		UniqueURLs: agg.URLCount,
		Duration:   result.Duration,
		DryRun:     p.cfg.DryRun,
	})

	p.logger.Info("pipeline execution completed",
		"run_id", result.ID,
		"target", target.Root,
		"urls", result.URLCount,
		"warnings", len(result.Warnings),
		"total_duration_ms", result.Duration.Milliseconds(),
	)

	p.record(ctx, result)
	return result, nil
}

// checkTools reports every tool and fails only outside dry-run.
func (p *PipelineOrchestrator) checkTools() error {
	p.presenter.Info("Checking required tools...")

	names := ToolNames(p.stages)
	var missing []string
	if p.checker != nil {
		missing = p.checker.Check(names)
	}

	isMissing := make(map[string]bool, len(missing))
	for _, m := range missing {
		isMissing[m] = true
	}
	for _, name := range names {
		p.presenter.ToolStatus(name, !isMissing[name])
	}

	if len(missing) == 0 {
		p.presenter.Success("All tools are installed!")
		return nil
	}

	p.presenter.Error("Missing tools: " + strings.Join(missing, ", "))
	p.presenter.Info("Please install ProjectDiscovery tools from: " + ui.InstallHint)
	p.logger.Warn("required tools missing", "missing", strings.Join(missing, ","), "dry_run", p.cfg.DryRun)

	if p.cfg.DryRun {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrToolsMissing, strings.Join(missing, ", "))
}

// prepareOutputDir creates the output directory; dry-run only announces it.
func (p *PipelineOrchestrator) prepareOutputDir() error {
	if p.cfg.DryRun {
		p.presenter.OutputDir(p.cfg.OutputDir, true)
		return nil
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		p.presenter.Error("Cannot create output directory: " + err.Error())
		return errors.Wrapf(err, "create output directory %s", p.cfg.OutputDir)
	}
	p.presenter.OutputDir(p.cfg.OutputDir, false)
	return nil
}

func (p *PipelineOrchestrator) transition(result *domain.RunResult, to domain.RunState) {
	from := result.State
	result.Transitions = append(result.Transitions, domain.Transition{From: from, To: to, At: p.now()})
	result.State = to
	p.logger.Debug("state transition", "from", from.String(), "to", to.String())
}

func (p *PipelineOrchestrator) fail(ctx context.Context, result *domain.RunResult, err error) (*domain.RunResult, error) {
	p.transition(result, domain.StateFailed)
	result.Err = err
	result.Finalize(p.now())

	p.logger.Warn("pipeline failed",
		"run_id", result.ID,
		"failed_stage", result.FailedStage.String(),
		"error", err.Error(),
	)

	p.record(ctx, result)
	return result, err
}

// record guarda la ejecución en el histórico. Best-effort, and it still runs
// after an interrupt.
func (p *PipelineOrchestrator) record(ctx context.Context, result *domain.RunResult) {
	if p.repository == nil {
		return
	}
	if err := p.repository.SaveRun(context.WithoutCancel(ctx), result); err != nil {
		p.logger.Warn("failed to record run", "run_id", result.ID, "error", err.Error())
		result.AddWarning("history", err.Error())
	}
}
