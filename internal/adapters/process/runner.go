// Package process runs the external reconnaissance tools.
package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
	"webenum/internal/platform/logx"
)

// maxLineSize bounds a single stdout line. katana can emit very long URLs.
const maxLineSize = 10 * 1024 * 1024

// Console receives everything the runner shows to the operator.
type Console interface {
	Command(description, command, outputPath string)
	DryRun(msg string)
	Info(msg string)
	StreamLine(line string)
	Success(msg string)
	Error(msg string)
}

// Options configures a Runner.
type Options struct {
	Logger  logx.Logger
	Console Console

	// DryRun prints commands without spawning anything.
	DryRun bool

	// WaitDelay bounds how long Wait blocks on I/O after the child exits
	// or the context is cancelled. Zero means 2s.
	WaitDelay time.Duration
}

// Runner implements ports.CommandRunner on top of os/exec.
type Runner struct {
	logger    logx.Logger
	console   Console
	dryRun    bool
	waitDelay time.Duration
}

var _ ports.CommandRunner = (*Runner)(nil)

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	if opts.Console == nil {
		opts.Console = discardConsole{}
	}
	if opts.WaitDelay <= 0 {
		opts.WaitDelay = 2 * time.Second
	}
	return &Runner{
		logger:    opts.Logger.With("component", "process_runner"),
		console:   opts.Console,
		dryRun:    opts.DryRun,
		waitDelay: opts.WaitDelay,
	}
}

// Execute runs cmd and reports the outcome. It never panics: any fault,
// including one raised by the console, becomes a failed result.
func (r *Runner) Execute(ctx context.Context, cmd ports.Command, description, outputPath string) (res domain.StageResult) {
	res = domain.StageResult{OutputPath: outputPath, ExitCode: -1}

	defer func() {
		if p := recover(); p != nil {
			res.Success = false
			res.Err = fmt.Errorf("%w: unexpected fault: %v", domain.ErrStageFailed, p)
			r.logger.Warn("recovered from panic", "command", cmd.Name, "panic", p)
			r.safeError(fmt.Sprintf("Unexpected error: %v", p))
		}
	}()

	r.console.Command(description, cmd.String(), outputPath)

	if r.dryRun {
		r.console.DryRun("Command not executed")
		return domain.StageResult{Success: true, DryRun: true, OutputPath: outputPath}
	}

	if err := ctx.Err(); err != nil {
		res.Err = interrupted(ctx)
		return res
	}

	r.console.Info("Executing...")
	start := time.Now()

	if outputPath == "" {
		res = r.runBuffered(ctx, cmd)
	} else {
		res = r.runStreaming(ctx, cmd, outputPath)
	}

	r.logger.Debug("command finished",
		"command", cmd.Name,
		"exit_code", res.ExitCode,
		"lines", res.Lines,
		"duration", time.Since(start).String(),
	)

	if res.Success {
		r.console.Success("Completed successfully!")
	}
	return res
}

// runStreaming copies stdout line by line to the console and outputPath
// while the child runs. Each line is written straight to the file so an
// interrupted run keeps what was already received.
func (r *Runner) runStreaming(ctx context.Context, cmd ports.Command, outputPath string) domain.StageResult {
	res := domain.StageResult{OutputPath: outputPath, ExitCode: -1}

	out, err := os.Create(outputPath)
	if err != nil {
		res.Err = fmt.Errorf("%w: create output file: %v", domain.ErrStageFailed, err)
		r.console.Error(fmt.Sprintf("Error executing command: %v", err))
		return res
	}
	defer out.Close()

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.WaitDelay = r.waitDelay

	stdout, err := c.StdoutPipe()
	if err != nil {
		return r.spawnFailed(res, err)
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return r.spawnFailed(res, err)
	}

	if err := c.Start(); err != nil {
		return r.spawnFailed(res, err)
	}
	r.logger.Debug("subprocess started", "command", cmd.Name, "pid", c.Process.Pid)

	// A grandchild can keep the pipes open after the child is killed, so
	// close our ends as soon as the context is done.
	stop := context.AfterFunc(ctx, func() {
		_ = stdout.Close()
		_ = stderr.Close()
	})
	defer stop()

	var stderrBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&stderrBuf, stderr)
		return err
	})

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var writeErr error
	for scanner.Scan() {
		line := scanner.Text()
		r.console.StreamLine(line)
		if _, err := out.WriteString(line + "\n"); err != nil {
			writeErr = err
			break
		}
		res.Lines++
	}
	if writeErr != nil {
		// keep the child from blocking on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
	} else if err := scanner.Err(); err != nil && ctx.Err() == nil {
		r.logger.Warn("scanner error", "command", cmd.Name, "error", err.Error())
		writeErr = err
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		r.logger.Debug("stderr read error", "error", err.Error())
	}
	waitErr := c.Wait()

	res.Stderr = stderrBuf.String()
	return r.finish(ctx, res, waitErr, writeErr)
}

// runBuffered captures stdout in memory and prints it once the child exits.
func (r *Runner) runBuffered(ctx context.Context, cmd ports.Command) domain.StageResult {
	res := domain.StageResult{ExitCode: -1}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.WaitDelay = r.waitDelay
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Start(); err != nil {
		return r.spawnFailed(res, err)
	}
	waitErr := c.Wait()

	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if waitErr == nil {
		for _, line := range strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n") {
			if line != "" {
				r.console.StreamLine(line)
				res.Lines++
			}
		}
	}
	return r.finish(ctx, res, waitErr, nil)
}

func (r *Runner) finish(ctx context.Context, res domain.StageResult, waitErr, ioErr error) domain.StageResult {
	if ctx.Err() != nil {
		res.Err = interrupted(ctx)
		res.ExitCode = exitCode(waitErr)
		r.logger.Warn("command interrupted", "lines_kept", res.Lines)
		return res
	}

	if waitErr != nil {
		res.ExitCode = exitCode(waitErr)
		res.Err = fmt.Errorf("%w: %v", domain.ErrStageFailed, waitErr)
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = waitErr.Error()
		}
		r.console.Error("Error: " + msg)
		r.logger.Warn("subprocess exited with error", "exit_code", res.ExitCode, "error", waitErr.Error())
		return res
	}

	res.ExitCode = 0
	if ioErr != nil {
		res.Err = fmt.Errorf("%w: write output: %v", domain.ErrStageFailed, ioErr)
		r.console.Error(fmt.Sprintf("Error executing command: %v", ioErr))
		return res
	}

	res.Success = true
	return res
}

func (r *Runner) spawnFailed(res domain.StageResult, err error) domain.StageResult {
	res.Err = fmt.Errorf("%w: %v", domain.ErrSpawnFailed, err)
	r.console.Error(fmt.Sprintf("Error executing command: %v", err))
	r.logger.Warn("failed to start process", "error", err.Error())
	return res
}

// safeError reports through the console without letting a second panic
// escape the recover handler.
func (r *Runner) safeError(msg string) {
	defer func() { _ = recover() }()
	r.console.Error(msg)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func interrupted(ctx context.Context) error {
	return fmt.Errorf("%w: %v", domain.ErrInterrupted, context.Cause(ctx))
}

type discardConsole struct{}

func (discardConsole) Command(string, string, string) {}
func (discardConsole) DryRun(string)                  {}
func (discardConsole) Info(string)                    {}
func (discardConsole) StreamLine(string)              {}
func (discardConsole) Success(string)                 {}
func (discardConsole) Error(string)                   {}
