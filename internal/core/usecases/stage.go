// internal/core/usecases/stage.go
package usecases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
	"webenum/internal/platform/logx"
	"webenum/internal/platform/ui"
)

// StageDescriptor declares one pipeline stage. The orchestrator consumes an
// ordered list of descriptors with a single generic loop.
type StageDescriptor struct {
	Stage domain.Stage

	// Tool nombre de la herramienta externa (y clave en el resumen)
	Tool string

	// Title se muestra en el header del stage ("Port scanning")
	Title string

	// Description se muestra antes del comando
	Description string

	// OutputFile nombre canónico del archivo de salida
	OutputFile string

	// Input is the stage whose output file feeds this one. Zero means the
	// stage takes the target domain instead of a file.
	Input domain.Stage

	// InputFlag precede al archivo de entrada (o al dominio)
	InputFlag string

	// Args fijos que siguen a la entrada
	Args []string

	// ProxyFlag is appended with "http://<proxy>" when a proxy is set.
	// Empty means the tool is never proxied.
	ProxyFlag string

	// URLSource marks outputs merged into the Burp URL list.
	URLSource bool
}

// DefaultStages returns the five stages in pipeline order. httpx and katana
// spell their proxy flag differently and both spellings are kept.
func DefaultStages() []StageDescriptor {
	return []StageDescriptor{
		{
			Stage:       domain.StageDiscover,
			Tool:        "subfinder",
			Title:       "Subdomain enumeration",
			Description: "Finding subdomains with subfinder",
			OutputFile:  "subfinder.txt",
			InputFlag:   "-d",
			Args:        []string{"-all", "-silent"},
		},
		{
			Stage:       domain.StageResolve,
			Tool:        "dnsx",
			Title:       "DNS resolution",
			Description: "Resolving subdomains with dnsx",
			OutputFile:  "dnsx.txt",
			Input:       domain.StageDiscover,
			InputFlag:   "-l",
			Args:        []string{"-silent"},
		},
		{
			Stage:       domain.StageScanPorts,
			Tool:        "naabu",
			Title:       "Port scanning",
			Description: "Scanning ports with naabu",
			OutputFile:  "naabu.txt",
			Input:       domain.StageResolve,
			InputFlag:   "-list",
			Args:        []string{"-p", "80,443,8080,8443,8000,8888,3000,5000", "-silent"},
		},
		{
			Stage:       domain.StageProbeHTTP,
			Tool:        "httpx",
			Title:       "HTTP probing",
			Description: "Probing HTTP services with httpx",
			OutputFile:  "httpx.txt",
			Input:       domain.StageScanPorts,
			InputFlag:   "-l",
			Args:        []string{"-silent", "-follow-redirects"},
			ProxyFlag:   "-http-proxy",
			URLSource:   true,
		},
		{
			Stage:       domain.StageCrawl,
			Tool:        "katana",
			Title:       "Web crawling",
			Description: "Crawling URLs with katana",
			OutputFile:  "katana.txt",
			Input:       domain.StageProbeHTTP,
			InputFlag:   "-list",
			Args:        []string{"-silent", "-d", "3"},
			ProxyFlag:   "-proxy",
			URLSource:   true,
		},
	}
}

// ToolNames returns the tool of every descriptor, in order.
func ToolNames(stages []StageDescriptor) []string {
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Tool)
	}
	return names
}

// findDescriptor returns the descriptor for stage s.
func findDescriptor(stages []StageDescriptor, s domain.Stage) (StageDescriptor, bool) {
	for _, d := range stages {
		if d.Stage == s {
			return d, true
		}
	}
	return StageDescriptor{}, false
}

// StageRunnerOptions configura el StageRunner.
type StageRunnerOptions struct {
	Runner    ports.CommandRunner
	Stages    []StageDescriptor
	Target    string
	OutputDir string
	Proxy     string
	DryRun    bool

	// ToolPath maps a tool name to the binary to execute. Nil uses the name.
	ToolPath func(string) string

	Presenter ui.Presenter
	Logger    logx.Logger
}

// StageRunner builds and runs the command of one stage.
type StageRunner struct {
	runner    ports.CommandRunner
	stages    []StageDescriptor
	target    string
	outputDir string
	proxy     string
	dryRun    bool
	toolPath  func(string) string
	presenter ui.Presenter
	logger    logx.Logger
}

// NewStageRunner crea un StageRunner.
func NewStageRunner(opts StageRunnerOptions) *StageRunner {
	if opts.Stages == nil {
		opts.Stages = DefaultStages()
	}
	if opts.ToolPath == nil {
		opts.ToolPath = func(name string) string { return name }
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	return &StageRunner{
		runner:    opts.Runner,
		stages:    opts.Stages,
		target:    opts.Target,
		outputDir: opts.OutputDir,
		proxy:     opts.Proxy,
		dryRun:    opts.DryRun,
		toolPath:  opts.ToolPath,
		presenter: opts.Presenter,
		logger:    opts.Logger.With("component", "stage_runner"),
	}
}

// OutputPath returns the canonical output path of d.
func (s *StageRunner) OutputPath(d StageDescriptor) string {
	return filepath.Join(s.outputDir, d.OutputFile)
}

// InputPath returns the file d reads, or "" when d takes the target.
func (s *StageRunner) InputPath(d StageDescriptor) (string, error) {
	if d.Input == 0 {
		return "", nil
	}
	prev, ok := findDescriptor(s.stages, d.Input)
	if !ok {
		return "", fmt.Errorf("stage %s: no descriptor for input stage %s", d.Stage, d.Input)
	}
	return s.OutputPath(prev), nil
}

// BuildCommand assembles [inputFlag, input] + args (+ [proxyFlag, proxyURL]).
func (s *StageRunner) BuildCommand(d StageDescriptor) (ports.Command, error) {
	input, err := s.InputPath(d)
	if err != nil {
		return ports.Command{}, err
	}
	if d.Input == 0 {
		input = s.target
	}

	args := make([]string, 0, len(d.Args)+4)
	args = append(args, d.InputFlag, input)
	args = append(args, d.Args...)
	if s.proxy != "" && d.ProxyFlag != "" {
		args = append(args, d.ProxyFlag, "http://"+s.proxy)
	}

	return ports.Command{Name: s.toolPath(d.Tool), Args: args}, nil
}

// Run executes stage d. Outside dry-run a missing input file fails the stage
// without invoking the runner.
func (s *StageRunner) Run(ctx context.Context, d StageDescriptor) domain.StageResult {
	outputPath := s.OutputPath(d)

	input, err := s.InputPath(d)
	if err != nil {
		return domain.StageResult{OutputPath: outputPath, ExitCode: -1, Err: err}
	}

	if input != "" && !s.dryRun {
		if _, statErr := os.Stat(input); statErr != nil {
			s.presenter.Error("Input file not found: " + input)
			s.logger.Warn("missing stage input", "stage", d.Stage.String(), "path", input)
			return domain.StageResult{
				OutputPath: outputPath,
				ExitCode:   -1,
				Err:        domain.MissingInputError(input),
			}
		}
	}

	cmd, err := s.BuildCommand(d)
	if err != nil {
		return domain.StageResult{OutputPath: outputPath, ExitCode: -1, Err: err}
	}

	if s.proxy != "" && d.ProxyFlag != "" {
		s.presenter.Info(fmt.Sprintf("Burp proxy enabled: %s (via %s)", s.proxy, d.ProxyFlag))
	}

	s.logger.Debug("running stage", "stage", d.Stage.String(), "command", cmd.String())
	return s.runner.Execute(ctx, cmd, d.Description, outputPath)
}
