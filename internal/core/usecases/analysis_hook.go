// internal/core/usecases/analysis_hook.go
package usecases

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
	"webenum/internal/platform/errors"
	"webenum/internal/platform/logx"
	"webenum/internal/platform/ui"
)

const analysisSection = "BONUS: LLM ANALYSIS"

// BuildPrompt renders the classification prompt for urls. Callers cap the
// list beforehand.
func BuildPrompt(urls []string) string {
	var b strings.Builder
	b.WriteString("Analyze these URLs from web enumeration and identify high-value endpoints for security testing:\n\n")
	b.WriteString(strings.Join(urls, "\n"))
	b.WriteString("\n\nProvide a JSON response with:\n")
	b.WriteString("- high_value_endpoints: list of URLs that might have security issues (login, admin, upload, api)\n")
	b.WriteString("- interesting_parameters: URLs with query parameters\n")
	b.WriteString("- priority_targets: top 5 URLs to test first\n\n")
	b.WriteString("Focus on reconnaissance value only, no exploitation.")
	return b.String()
}

// AnalysisHookOptions configura el AnalysisHook.
type AnalysisHookOptions struct {
	Analyzer  ports.Analyzer
	OutputDir string

	// MaxURLs cantidad máxima de URLs enviadas (0 = 50)
	MaxURLs int

	// Timeout de la llamada completa (0 = sin límite propio)
	Timeout time.Duration

	Presenter ui.Presenter
	Logger    logx.Logger
}

// AnalysisHook sends the merged URLs to the Analyzer and stores the raw
// answer. It is best-effort: errors are reported and returned but must
// never change the outcome of the run.
type AnalysisHook struct {
	analyzer  ports.Analyzer
	outputDir string
	maxURLs   int
	timeout   time.Duration
	presenter ui.Presenter
	logger    logx.Logger
}

// NewAnalysisHook crea un nuevo AnalysisHook.
func NewAnalysisHook(opts AnalysisHookOptions) *AnalysisHook {
	if opts.MaxURLs <= 0 || opts.MaxURLs > 50 {
		opts.MaxURLs = 50
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	return &AnalysisHook{
		analyzer:  opts.Analyzer,
		outputDir: opts.OutputDir,
		maxURLs:   opts.MaxURLs,
		timeout:   opts.Timeout,
		presenter: opts.Presenter,
		logger:    opts.Logger.With("component", "analysis_hook"),
	}
}

// Enabled reports whether the hook has a usable analyzer.
func (h *AnalysisHook) Enabled() bool {
	return h.analyzer != nil && h.analyzer.Enabled()
}

// Run performs the analysis and returns the path of llm_analysis.json.
// A disabled analyzer returns domain.ErrAnalysisDisabled without output.
func (h *AnalysisHook) Run(ctx context.Context, urlsPath string, dryRun bool) (string, error) {
	if !h.Enabled() {
		return "", domain.ErrAnalysisDisabled
	}

	h.presenter.Section(analysisSection)
	if dryRun {
		h.presenter.DryRun("Would perform LLM analysis")
		return "", nil
	}

	h.presenter.Info("Analyzing endpoints with LLM...")

	path, err := h.analyze(ctx, urlsPath)
	if errors.Is(err, domain.ErrNoURLs) {
		h.presenter.Warning("No URLs to analyze, skipping LLM analysis")
		return "", err
	}
	if err != nil {
		h.presenter.Error("LLM analysis failed: " + err.Error())
		h.logger.Warn("analysis failed", "analyzer", h.analyzer.Name(), "error", err.Error())
		return "", err
	}

	h.presenter.Success("LLM analysis saved: " + path)
	return path, nil
}

func (h *AnalysisHook) analyze(ctx context.Context, urlsPath string) (string, error) {
	urls, _, err := ReadLines(urlsPath)
	if err != nil {
		return "", errors.Wrap(err, "read URL list")
	}
	if len(urls) == 0 {
		return "", domain.ErrNoURLs
	}
	if len(urls) > h.maxURLs {
		urls = urls[:h.maxURLs]
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	h.logger.Debug("submitting analysis", "analyzer", h.analyzer.Name(), "urls", len(urls))
	answer, err := h.analyzer.Analyze(ctx, BuildPrompt(urls))
	if err != nil {
		return "", err
	}

	path := filepath.Join(h.outputDir, domain.AnalysisFile)
	if err := os.WriteFile(path, []byte(answer), 0o644); err != nil {
		return "", errors.Wrap(err, "write analysis")
	}
	return path, nil
}
