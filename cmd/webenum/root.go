package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"webenum/internal/adapters/analysis"
	"webenum/internal/adapters/history"
	"webenum/internal/adapters/output"
	"webenum/internal/adapters/process"
	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
	"webenum/internal/core/usecases"
	"webenum/internal/platform/config"
	"webenum/internal/platform/errors"
	"webenum/internal/platform/logx"
	"webenum/internal/platform/toolcheck"
	"webenum/internal/platform/ui"
)

// exitError carries a process exit status. A nil err means the failure was
// already reported on the console.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// NewRootCmd creates the root command for webenum.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webenum",
		Short: "Web enumeration toolchain for Burp Suite preparation",
		Long: `webenum runs subfinder, dnsx, naabu, httpx and katana in sequence
against one domain. Every stage reads the previous stage's output file and
the probed and crawled URLs are merged into urls_for_burp.txt.`,
		Example: `  webenum -d example.com
  webenum -d example.com -o results -b 127.0.0.1:8080
  webenum -d example.com --dry-run
  webenum -d example.com --llm --llm-api-key YOUR_KEY`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScan,
	}

	config.RegisterFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(config.FlagDomain, config.FlagFile)

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewHistoryCmd())

	return cmd
}

// Execute runs the root command and exits with the pipeline's status.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	// flag and argument errors, as reported by cobra
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// recoverFault turns a panic in the scan into exit status 1.
func recoverFault(out io.Writer, errp *error) {
	if r := recover(); r != nil {
		fmt.Fprintf(out, "[!] Fatal error: %v\n", r)
		*errp = &exitError{code: 1}
	}
}

func runScan(cmd *cobra.Command, _ []string) (err error) {
	defer recoverFault(cmd.OutOrStdout(), &err)

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return &exitError{code: 1, err: err}
	}

	presenter := newPresenter(cfg, cmd.OutOrStdout())
	defer presenter.Close()

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, domain.ErrMultiDomainUnsupported) {
			presenter.Warning("Multi-domain scanning not yet implemented")
			presenter.Warning("Please scan one domain at a time")
			return &exitError{code: 1}
		}
		return &exitError{code: 1, err: err}
	}

	logger := logx.NewWithWriter(cmd.ErrOrStderr(), logx.ParseLevel(cfg.LogLevel))
	logger.Debug("webenum starting",
		"version", getVersion(),
		"target", cfg.Target,
		"config_file", cfg.ConfigFile,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := openHistory(cfg, logger)
	if repo != nil {
		defer repo.Close()
	}

	orch := usecases.NewPipelineOrchestrator(usecases.PipelineOrchestratorOptions{
		Config: cfg,
		Runner: process.NewRunner(process.Options{
			Logger:  logger,
			Console: presenter,
			DryRun:  cfg.DryRun,
		}),
		Checker:    toolcheck.New(toolcheck.WithToolPaths(cfg.Tools)),
		Analyzer:   newAnalyzer(cfg, logger),
		Exporters:  []ports.Exporter{output.NewJSONExporter(true), output.NewMarkdownExporter()},
		Repository: repo,
		Presenter:  presenter,
		Logger:     logger,
		Version:    getVersion(),
	})

	result, runErr := orch.Run(ctx)
	if runErr != nil {
		if errors.Is(runErr, domain.ErrInterrupted) || ctx.Err() != nil {
			presenter.Warning("Interrupted by user")
		}
		logger.Err(runErr, "phase", "run")
	}
	if result == nil {
		return &exitError{code: 1, err: runErr}
	}
	if code := result.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

var newPresenter = func(cfg config.Config, out io.Writer) ui.Presenter {
	if cfg.Raw {
		return ui.NewRawPresenter(out)
	}
	return ui.NewPTermPresenter(!cfg.NoColor)
}

// newAnalyzer returns the OpenAI client only when --llm comes with a key.
func newAnalyzer(cfg config.Config, logger logx.Logger) ports.Analyzer {
	if !cfg.Analysis.Active() {
		if cfg.Analysis.Enabled {
			logger.Warn("analysis requested without an API key, skipping")
		}
		return analysis.Disabled{}
	}
	return analysis.NewOpenAIAnalyzer(analysis.OpenAIOptions{
		APIKey:   cfg.Analysis.APIKey,
		Model:    cfg.Analysis.Model,
		Endpoint: cfg.Analysis.Endpoint,
		Timeout:  cfg.Analysis.Timeout,
		Logger:   logger,
	})
}

// openHistory opens the run history when enabled. Failures only disable it.
func openHistory(cfg config.Config, logger logx.Logger) ports.Repository {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("history disabled", "path", cfg.History.Path, "error", err.Error())
		return nil
	}
	return store
}
