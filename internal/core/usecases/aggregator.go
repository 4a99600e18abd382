// internal/core/usecases/aggregator.go
package usecases

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
	"webenum/internal/platform/errors"
	"webenum/internal/platform/logx"
	"webenum/internal/platform/ui"
)

// ReadLines returns the whitespace-trimmed, non-blank lines of path. A
// missing file is not an error: it yields no lines and found=false.
func ReadLines(path string) (lines []string, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 10*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return lines, true, err
	}
	return lines, true, nil
}

// MergeURLs returns the sorted union of lists. Entries are compared as exact
// strings; no URL normalization happens here.
func MergeURLs(lists ...[]string) []string {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, u := range list {
			seen[u] = struct{}{}
		}
	}

	merged := make([]string, 0, len(seen))
	for u := range seen {
		merged = append(merged, u)
	}
	sort.Strings(merged)
	return merged
}

// AggregatorOptions configura el ResultAggregator.
type AggregatorOptions struct {
	OutputDir string
	Stages    []StageDescriptor

	// Exporters escriben el resumen (summary.json, summary.md)
	Exporters []ports.Exporter

	Presenter ui.Presenter
	Logger    logx.Logger
}

// ResultAggregator merges the URL producing outputs into the Burp list and
// builds the per-stage summary.
type ResultAggregator struct {
	outputDir string
	stages    []StageDescriptor
	exporters []ports.Exporter
	presenter ui.Presenter
	logger    logx.Logger
}

// AggregateResult is what the aggregation step produced.
type AggregateResult struct {
	URLsPath string
	URLCount int
	Summary  *domain.Summary

	// Files escritos por los exporters, por nombre
	Files map[string]string
}

// NewResultAggregator crea un nuevo aggregator.
func NewResultAggregator(opts AggregatorOptions) *ResultAggregator {
	if opts.Stages == nil {
		opts.Stages = DefaultStages()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	return &ResultAggregator{
		outputDir: opts.OutputDir,
		stages:    opts.Stages,
		exporters: opts.Exporters,
		presenter: opts.Presenter,
		logger:    opts.Logger.With("component", "result_aggregator"),
	}
}

// URLsPath returns the path of the merged URL list.
func (a *ResultAggregator) URLsPath() string {
	return filepath.Join(a.outputDir, domain.URLsFile)
}

// Aggregate writes urls_for_burp.txt and every exporter output. In dry-run
// nothing is read or written.
func (a *ResultAggregator) Aggregate(target string, now time.Time, dryRun bool) (*AggregateResult, error) {
	res := &AggregateResult{URLsPath: a.URLsPath(), Files: map[string]string{}}

	a.presenter.Info("Generating BurpSuite URL list...")
	if dryRun {
		a.presenter.DryRun("Would generate " + domain.URLsFile)
	} else {
		count, err := a.WriteURLList()
		if err != nil {
			return nil, errors.Wrap(err, "write URL list")
		}
		res.URLCount = count
		a.presenter.Success("BurpSuite URL list created: " + res.URLsPath)
		a.presenter.Info(fmt.Sprintf("Total unique URLs: %d", count))
	}

	a.presenter.Info("Generating summary...")
	if dryRun {
		for _, exp := range a.exporters {
			a.presenter.DryRun("Would generate " + exp.FileName())
		}
		return res, nil
	}

	summary, err := a.BuildSummary(target, now)
	if err != nil {
		return nil, errors.Wrap(err, "build summary")
	}
	res.Summary = &summary

	for _, exp := range a.exporters {
		path, err := exp.Export(summary, a.outputDir)
		if err != nil {
			return nil, errors.Wrapf(err, "export %s", exp.Name())
		}
		res.Files[exp.Name()] = path
		a.logger.Debug("summary exported", "exporter", exp.Name(), "path", path)
	}

	stats := make([]ui.StatLine, 0, len(summary.Stages))
	for _, st := range summary.Stages {
		stats = append(stats, ui.StatLine{Name: st.Name, Count: st.Count})
	}
	a.presenter.Recap(ui.RecapInfo{Target: summary.Target, Timestamp: summary.Timestamp, Stats: stats})

	return res, nil
}

// WriteURLList merges the URL source outputs and writes them sorted, one per
// line. It returns the number of unique URLs.
func (a *ResultAggregator) WriteURLList() (int, error) {
	var lists [][]string
	for _, d := range a.stages {
		if !d.URLSource {
			continue
		}
		lines, found, err := ReadLines(filepath.Join(a.outputDir, d.OutputFile))
		if err != nil {
			return 0, err
		}
		if !found {
			a.logger.Debug("url source missing", "tool", d.Tool)
		}
		lists = append(lists, lines)
	}

	merged := MergeURLs(lists...)

	var b strings.Builder
	for _, u := range merged {
		b.WriteString(u)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(a.URLsPath(), []byte(b.String()), 0o644); err != nil {
		return 0, err
	}

	return len(merged), nil
}

// BuildSummary counts the non-blank lines of every stage output that exists
// and keeps the first domain.SampleSize of them.
func (a *ResultAggregator) BuildSummary(target string, now time.Time) (domain.Summary, error) {
	summary := domain.Summary{
		Target:    target,
		Timestamp: now,
		Stages:    make([]domain.StageCount, 0, len(a.stages)),
	}

	for _, d := range a.stages {
		lines, found, err := ReadLines(filepath.Join(a.outputDir, d.OutputFile))
		if err != nil {
			return summary, errors.Wrapf(err, "read %s", d.OutputFile)
		}
		if !found {
			continue
		}

		sample := lines
		if len(sample) > domain.SampleSize {
			sample = sample[:domain.SampleSize]
		}
		summary.Stages = append(summary.Stages, domain.StageCount{
			Name:   d.Tool,
			Count:  len(lines),
			Sample: append([]string{}, sample...),
		})
	}

	return summary, nil
}
