// internal/core/domain/enums.go
package domain

// Stage identifies one step of the enumeration pipeline. The numeric order
// is the execution order.
type Stage int

const (
	StageDiscover Stage = iota + 1
	StageResolve
	StageScanPorts
	StageProbeHTTP
	StageCrawl
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageDiscover, StageResolve, StageScanPorts, StageProbeHTTP, StageCrawl}

// IsValid verifica si el stage es conocido.
func (s Stage) IsValid() bool {
	return s >= StageDiscover && s <= StageCrawl
}

// String retorna el nombre del stage.
func (s Stage) String() string {
	switch s {
	case StageDiscover:
		return "discover"
	case StageResolve:
		return "resolve"
	case StageScanPorts:
		return "scan_ports"
	case StageProbeHTTP:
		return "probe_http"
	case StageCrawl:
		return "crawl"
	default:
		return "unknown"
	}
}

// Number is the 1-based position of the stage in the pipeline.
func (s Stage) Number() int {
	if !s.IsValid() {
		return 0
	}
	return int(s)
}

// Previous returns the stage whose output feeds s. Discover has none.
func (s Stage) Previous() (Stage, bool) {
	if s <= StageDiscover || !s.IsValid() {
		return 0, false
	}
	return s - 1, true
}

// RunState is a state of the pipeline state machine.
type RunState string

const (
	StateIdle        RunState = "idle"
	StateChecking    RunState = "checking"
	StateStage1      RunState = "stage1"
	StateStage2      RunState = "stage2"
	StateStage3      RunState = "stage3"
	StateStage4      RunState = "stage4"
	StateStage5      RunState = "stage5"
	StateAggregating RunState = "aggregating"
	StateAnalyzing   RunState = "analyzing_optional"
	StateDone        RunState = "done"
	StateFailed      RunState = "failed"
)

// StateFor returns the state that represents running stage s.
func StateFor(s Stage) RunState {
	switch s {
	case StageDiscover:
		return StateStage1
	case StageResolve:
		return StateStage2
	case StageScanPorts:
		return StateStage3
	case StageProbeHTTP:
		return StateStage4
	case StageCrawl:
		return StateStage5
	default:
		return StateFailed
	}
}

// IsTerminal reports whether no transition leaves the state.
func (s RunState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// String retorna la representación string del estado.
func (s RunState) String() string {
	return string(s)
}

// Canonical file names written next to the stage outputs.
const (
	URLsFile            = "urls_for_burp.txt"
	SummaryFile         = "summary.json"
	SummaryMarkdownFile = "summary.md"
	AnalysisFile        = "llm_analysis.json"
)
