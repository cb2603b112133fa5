package trace

import "github.com/google/uuid"

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every dispatch segment and page event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelEvents
}

// SimulationTrace collects records during one simulation run.
type SimulationTrace struct {
	RunID    string
	Config   TraceConfig
	Segments []SegmentRecord
	Pages    []PageRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording, tagged with a fresh run ID.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		RunID:    uuid.New().String(),
		Config:   config,
		Segments: make([]SegmentRecord, 0),
		Pages:    make([]PageRecord, 0),
	}
}

// RecordSegment appends a dispatch record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordSegment(record SegmentRecord) {
	if !st.Config.Enabled() {
		return
	}
	st.Segments = append(st.Segments, record)
}

// RecordPage appends a page record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordPage(record PageRecord) {
	if !st.Config.Enabled() {
		return
	}
	st.Pages = append(st.Pages, record)
}
