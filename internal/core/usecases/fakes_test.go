// internal/core/usecases/fakes_test.go
package usecases

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
)

// fakeRunner stands in for the process runner. In live mode it writes the
// configured lines for the tool to the output path.
type fakeRunner struct {
	mu sync.Mutex

	dryRun  bool
	outputs map[string][]string

	// failOn names a tool that exits with status 2
	failOn string

	// skipWrite names a tool that succeeds without creating its output
	skipWrite string

	calls []ports.Command
}

func (f *fakeRunner) Execute(ctx context.Context, cmd ports.Command, description, outputPath string) domain.StageResult {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.dryRun {
		return domain.StageResult{Success: true, OutputPath: outputPath, DryRun: true}
	}

	tool := filepath.Base(cmd.Name)
	if tool == f.failOn {
		return domain.StageResult{
			OutputPath: outputPath,
			ExitCode:   2,
			Err:        fmt.Errorf("%w: exit status 2", domain.ErrStageFailed),
		}
	}
	if tool == f.skipWrite {
		return domain.StageResult{Success: true, OutputPath: outputPath}
	}

	lines := f.outputs[tool]
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
		return domain.StageResult{OutputPath: outputPath, ExitCode: -1, Err: err}
	}
	return domain.StageResult{Success: true, OutputPath: outputPath, Lines: len(lines)}
}

func (f *fakeRunner) commandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

func (f *fakeRunner) tools() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, filepath.Base(c.Name))
	}
	return out
}

// fakeChecker reports a fixed set of tools as missing.
type fakeChecker struct {
	missing []string
	checked []string
}

func (f *fakeChecker) Check(names []string) []string {
	f.checked = append([]string{}, names...)
	out := []string{}
	for _, n := range names {
		for _, m := range f.missing {
			if n == m {
				out = append(out, n)
			}
		}
	}
	return out
}

// fakeAnalyzer returns a canned answer and records prompts.
type fakeAnalyzer struct {
	enabled bool
	answer  string
	err     error
	prompts []string
}

func (f *fakeAnalyzer) Name() string  { return "fake" }
func (f *fakeAnalyzer) Enabled() bool { return f.enabled }

func (f *fakeAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// fakeExporter writes the target name to its file and keeps the summary.
type fakeExporter struct {
	name     string
	fileName string
	err      error
	got      []domain.Summary
}

func (f *fakeExporter) Name() string     { return f.name }
func (f *fakeExporter) FileName() string { return f.fileName }

func (f *fakeExporter) Export(summary domain.Summary, dir string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.got = append(f.got, summary)
	path := filepath.Join(dir, f.fileName)
	return path, os.WriteFile(path, []byte(summary.Target), 0o644)
}

func (f *fakeExporter) ExportToWriter(summary domain.Summary, w io.Writer) error {
	_, err := io.WriteString(w, summary.Target)
	return err
}

// fakeRepository keeps saved runs in memory.
type fakeRepository struct {
	saved []*domain.RunResult
	err   error
}

func (f *fakeRepository) SaveRun(ctx context.Context, result *domain.RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, result)
	return nil
}

func (f *fakeRepository) ListRuns(ctx context.Context, filter ports.RunFilter) ([]ports.RunRecord, error) {
	return nil, nil
}

func (f *fakeRepository) Close() error { return nil }

// pipelineOutputs is realistic output for every tool, with overlap between
// the httpx and katana results.
func pipelineOutputs() map[string][]string {
	return map[string][]string{
		"subfinder": {"api.example.com", "www.example.com", "dev.example.com"},
		"dnsx":      {"api.example.com", "www.example.com"},
		"naabu":     {"api.example.com:443", "www.example.com:443", "www.example.com:8080"},
		"httpx":     {"https://www.example.com", "https://api.example.com", "http://www.example.com:8080"},
		"katana":    {"https://www.example.com", "https://www.example.com/login", "  ", "https://api.example.com/v1/users?id=1"},
	}
}
