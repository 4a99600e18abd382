// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// formatCount renders n with thousands separators ("12,345").
func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// stepTitle builds "STEP 3: PORT SCANNING".
func stepTitle(info StageInfo) string {
	return fmt.Sprintf("STEP %d: %s", info.Number, strings.ToUpper(info.Title))
}
