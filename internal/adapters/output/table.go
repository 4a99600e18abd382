// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"webenum/internal/core/ports"
)

// HistoryTable imprime una tabla legible de ejecuciones previas.
func HistoryTable(w io.Writer, records []ports.RunRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "STARTED\tTARGET\tSTATE\tDURATION\tURLS\tDETAILS")
	fmt.Fprintln(tw, "-------\t------\t-----\t--------\t----\t-------")

	for _, r := range records {
		state := string(r.State)
		if r.DryRun {
			state += " (dry-run)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.StartTime.Local().Format("2006-01-02 15:04:05"),
			r.Target,
			state,
			r.EndTime.Sub(r.StartTime).Round(time.Second),
			r.URLCount,
			details(r),
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// details resume el fallo o las estadísticas de una ejecución.
func details(r ports.RunRecord) string {
	if !r.Succeeded() {
		parts := []string{}
		if r.FailedStage != "" && r.FailedStage != "unknown" {
			parts = append(parts, "stage="+r.FailedStage)
		}
		if r.Error != "" {
			parts = append(parts, r.Error)
		}
		return strings.Join(parts, " ")
	}

	stats := make([]string, 0, len(r.Statistics))
	for _, s := range r.Statistics {
		stats = append(stats, fmt.Sprintf("%s=%d", s.Name, s.Count))
	}
	return strings.Join(stats, " ")
}
