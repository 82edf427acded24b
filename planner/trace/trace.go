// Package trace records the block decisions of a plan for later analysis.
// It stores pure data types and only depends on the planner's block types.
package trace

import "github.com/genoplan/genoplan/planner"

// TraceLevel controls the verbosity of plan tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelBlocks captures every chosen block.
	TraceLevelBlocks TraceLevel = "blocks"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelBlocks: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// BlockRecord captures one chosen block.
type BlockRecord struct {
	Label  string
	Start  int
	Length int
	Kind   planner.Kind
	Cost   float64 // acquisition plus the junction preceding the block
}

// PlanTrace collects block records across the sequences of a run.
type PlanTrace struct {
	Level  TraceLevel
	Blocks []BlockRecord
}

// NewPlanTrace creates a PlanTrace ready for recording.
func NewPlanTrace(level TraceLevel) *PlanTrace {
	return &PlanTrace{Level: level, Blocks: make([]BlockRecord, 0)}
}

// Enabled reports whether records are kept.
func (pt *PlanTrace) Enabled() bool {
	return pt != nil && pt.Level == TraceLevelBlocks
}

// RecordPartition appends one record per block of p. No-op when disabled.
func (pt *PlanTrace) RecordPartition(label string, p planner.Partition, cm planner.CostModel) {
	if !pt.Enabled() {
		return
	}
	for k, b := range p {
		pt.Blocks = append(pt.Blocks, BlockRecord{
			Label:  label,
			Start:  b.Start,
			Length: b.Len(),
			Kind:   b.Kind,
			Cost:   cm.BlockCost(b.Kind, b.Len(), k == 0),
		})
	}
}
