// internal/platform/ui/symbols.go
package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// Kind clasifica una línea de consola.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
	KindDryRun
)

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// Prefix is the bracketed marker printed before the message in raw mode.
// Warnings and errors share "[!]" and differ only in color.
func (k Kind) Prefix() string {
	switch k {
	case KindInfo:
		return "[*]"
	case KindSuccess:
		return "[+]"
	case KindWarning, KindError:
		return "[!]"
	case KindDryRun:
		return "[DRY-RUN]"
	default:
		return "[?]"
	}
}

// Style retorna el estilo pterm de cada tipo de línea
func (k Kind) Style() *pterm.Style {
	switch k {
	case KindInfo:
		return pterm.NewStyle(pterm.FgBlue)
	case KindSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case KindWarning, KindDryRun:
		return pterm.NewStyle(pterm.FgYellow)
	case KindError:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// Iconos del modo styled
const (
	IconTarget  = "🎯"
	IconFolder  = "📁"
	IconProxy   = "🔀"
	IconStage   = "#"
	IconSuccess = "✓"
	IconError   = "✗"
	IconStats   = "📊"
	IconTime    = "⏱"
)

// Rule widths match the 60 column blocks of the raw presenter.
var (
	RuleHeavy = strings.Repeat("━", 60)
	RuleLight = strings.Repeat("─", 60)
)
