// internal/platform/ui/raw_presenter.go
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// RawPresenter implementa el Presenter para modo raw: líneas de texto sin
// estilos, con los prefijos clásicos [+] [*] [!]. Used with --raw and when
// output is captured.
type RawPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewRawPresenter crea un nuevo RawPresenter. A nil writer means stdout.
func NewRawPresenter(out io.Writer) *RawPresenter {
	if out == nil {
		out = os.Stdout
	}
	return &RawPresenter{out: out}
}

func (r *RawPresenter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *RawPresenter) Banner(info RunInfo) {
	r.printf("%s", Banner)
	r.printf("%s %s", Tagline, info.Version)
	r.printf("Target: %s", info.Target)
	r.printf("Output: %s", info.OutputDir)
	if info.Proxy != "" {
		r.printf("Burp Proxy: %s", info.Proxy)
	}
	r.printf("%s", strings.Repeat("=", 50))
}

func (r *RawPresenter) OutputDir(path string, dryRun bool) {
	if dryRun {
		r.printf("[DRY-RUN] Would create output directory: %s", path)
		return
	}
	r.printf("%s Output directory created: %s", KindSuccess.Prefix(), path)
}

func (r *RawPresenter) ToolStatus(name string, found bool) {
	if found {
		r.printf("[%s] %s found", IconSuccess, name)
		return
	}
	r.printf("%s %s not found", KindError.Prefix(), name)
}

func (r *RawPresenter) StageHeader(info StageInfo) {
	r.printf("%s", strings.Repeat("#", 60))
	r.printf("# %s", stepTitle(info))
	r.printf("%s", strings.Repeat("#", 60))
}

func (r *RawPresenter) Section(title string) {
	r.printf("%s", strings.Repeat("#", 60))
	r.printf("# %s", title)
	r.printf("%s", strings.Repeat("#", 60))
}

func (r *RawPresenter) Command(description, command, outputPath string) {
	r.printf("%s", strings.Repeat("=", 60))
	r.printf("[WEBENUM] %s", description)
	r.printf("%s", strings.Repeat("=", 60))
	r.printf("Command: %s", command)
	if outputPath != "" {
		r.printf("Output: %s", outputPath)
	}
}

func (r *RawPresenter) DryRun(msg string)      { r.printf("%s %s", KindDryRun.Prefix(), msg) }
func (r *RawPresenter) StreamLine(line string) { r.printf("%s", line) }
func (r *RawPresenter) Info(msg string)        { r.printf("%s %s", KindInfo.Prefix(), msg) }
func (r *RawPresenter) Success(msg string)     { r.printf("%s %s", KindSuccess.Prefix(), msg) }
func (r *RawPresenter) Warning(msg string)     { r.printf("%s %s", KindWarning.Prefix(), msg) }
func (r *RawPresenter) Error(msg string)       { r.printf("%s %s", KindError.Prefix(), msg) }

func (r *RawPresenter) Recap(info RecapInfo) {
	r.printf("%s", strings.Repeat("=", 60))
	r.printf("ENUMERATION SUMMARY")
	r.printf("%s", strings.Repeat("=", 60))
	r.printf("Target: %s", info.Target)
	r.printf("Time: %s", info.Timestamp.Format(time.RFC3339))
	r.printf("Statistics:")
	for _, s := range info.Stats {
		r.printf("  • %s: %s", s.Name, formatCount(s.Count))
	}
	r.printf("%s", strings.Repeat("=", 60))
}

func (r *RawPresenter) Complete(info CompleteInfo) {
	r.printf("%s", strings.Repeat("=", 60))
	r.printf("[%s] ENUMERATION COMPLETE!", IconSuccess)
	r.printf("%s", strings.Repeat("=", 60))
	r.printf("Results location: %s", info.OutputDir)
	r.printf("BurpSuite import file: %s", info.URLsFile)
	if !info.DryRun {
		r.printf("Unique URLs: %s", formatCount(info.UniqueURLs))
	}
	r.printf("Duration: %s", formatDuration(info.Duration))
}

// Close no hace nada
func (r *RawPresenter) Close() error {
	return nil
}
