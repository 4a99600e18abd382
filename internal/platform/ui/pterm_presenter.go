// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar headers, cajas, tablas y colores en la terminal.
type PTermPresenter struct {
	mu sync.Mutex
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm.
// With color disabled all styling is stripped.
func NewPTermPresenter(color bool) *PTermPresenter {
	if !color {
		pterm.DisableStyling()
	}
	return &PTermPresenter{}
}

// Banner muestra el banner y la configuración de la ejecución
func (p *PTermPresenter) Banner(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println(pterm.Cyan(Banner))
	title := Tagline
	if info.Version != "" {
		title = fmt.Sprintf("%s %s", Tagline, info.Version)
	}
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println(title)
	pterm.Println()

	lines := []string{
		fmt.Sprintf("%s Target: %s", IconTarget, pterm.Yellow(info.Target)),
		fmt.Sprintf("%s Output: %s", IconFolder, pterm.Yellow(info.OutputDir)),
	}
	if info.Proxy != "" {
		lines = append(lines, fmt.Sprintf("%s Burp Proxy: %s", IconProxy, pterm.Yellow(info.Proxy)))
	}
	if info.DryRun {
		lines = append(lines, fmt.Sprintf("   Mode: %s", pterm.Yellow("dry-run")))
	}

	pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithLeftPadding(4).
		WithRightPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Println(strings.Join(lines, "\n"))
	pterm.Println()
}

// OutputDir reporta la creación del directorio de salida
func (p *PTermPresenter) OutputDir(path string, dryRun bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if dryRun {
		pterm.Println(pterm.Yellow("[DRY-RUN] Would create output directory: " + path))
		return
	}
	pterm.Success.Println("Output directory created: " + path)
}

// ToolStatus muestra si una herramienta está disponible
func (p *PTermPresenter) ToolStatus(name string, found bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if found {
		pterm.Println(KindSuccess.Style().Sprintf("  %s %s found", IconSuccess, name))
		return
	}
	pterm.Println(KindError.Style().Sprintf("  %s %s not found", IconError, name))
}

// StageHeader muestra el header de un stage
func (p *PTermPresenter) StageHeader(info StageInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.DefaultSection.WithLevel(2).Println(fmt.Sprintf("%s %s", IconStage, stepTitle(info)))
}

// Section muestra un bloque de post-procesado
func (p *PTermPresenter) Section(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.DefaultSection.WithLevel(2).Println(title)
}

// Command muestra el comando y el archivo de salida
func (p *PTermPresenter) Command(description, command, outputPath string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println(pterm.Cyan(RuleLight))
	pterm.Println(pterm.Bold.Sprint("[WEBENUM] " + description))
	pterm.Println(pterm.Cyan(RuleLight))
	pterm.Println(pterm.Yellow("Command: " + command))
	if outputPath != "" {
		pterm.Println(pterm.Yellow("Output: " + outputPath))
	}
}

// DryRun muestra un mensaje de simulación
func (p *PTermPresenter) DryRun(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Println(KindDryRun.Style().Sprint(KindDryRun.Prefix() + " " + msg))
}

// StreamLine muestra una línea de salida de la herramienta sin formato
func (p *PTermPresenter) StreamLine(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Println(line)
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Info.Println(msg)
}

// Success muestra un mensaje de éxito
func (p *PTermPresenter) Success(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Success.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Error.Println(msg)
}

// Recap muestra la tabla de estadísticas por stage
func (p *PTermPresenter) Recap(info RecapInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.DefaultSection.Println(fmt.Sprintf("%s ENUMERATION SUMMARY", IconStats))
	pterm.Printfln("%s %s", pterm.Bold.Sprint("Target:"), info.Target)
	pterm.Printfln("%s %s", pterm.Bold.Sprint("Time:"), info.Timestamp.Format(time.RFC3339))
	pterm.Println()

	data := pterm.TableData{{"Stage", "Results"}}
	for _, s := range info.Stats {
		data = append(data, []string{s.Name, formatCount(s.Count)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
	pterm.Println()
}

// Complete muestra el bloque final
func (p *PTermPresenter) Complete(info CompleteInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.Println(pterm.Green(RuleHeavy))
	pterm.Println(pterm.Green(IconSuccess + " ENUMERATION COMPLETE!"))
	pterm.Println(pterm.Green(RuleHeavy))
	pterm.Println()
	pterm.Printfln("%s %s", pterm.Bold.Sprint("Results location:"), pterm.Yellow(info.OutputDir))
	pterm.Printfln("%s %s", pterm.Bold.Sprint("BurpSuite import file:"), pterm.Yellow(info.URLsFile))
	if !info.DryRun {
		pterm.Printfln("%s %s", pterm.Bold.Sprint("Unique URLs:"), formatCount(info.UniqueURLs))
	}
	pterm.Printfln("%s %s %s", IconTime, pterm.Bold.Sprint("Duration:"), formatDuration(info.Duration))
}

// Close no libera nada; pterm escribe directamente en stdout
func (p *PTermPresenter) Close() error {
	return nil
}
