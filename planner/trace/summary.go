package trace

import "github.com/genoplan/genoplan/planner"

// TraceSummary aggregates statistics from a PlanTrace.
type TraceSummary struct {
	TotalBlocks        int
	ReuseBlocks        int
	SynthBlocks        int
	MeanReuseLength    float64
	MaxReuseLength     int
	MeanSynthLength    float64
	MaxSynthLength     int
	ReuseBaseFraction  float64
	ReuseCostFraction  float64
	LengthDistribution map[planner.Kind]map[int]int // kind -> block length -> count
}

// Summarize computes aggregate statistics from a PlanTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PlanTrace) *TraceSummary {
	summary := &TraceSummary{
		LengthDistribution: map[planner.Kind]map[int]int{
			planner.Reuse:      {},
			planner.Synthesize: {},
		},
	}
	if pt == nil {
		return summary
	}

	var reuseBases, synthBases int
	var reuseCost, totalCost float64
	for _, b := range pt.Blocks {
		summary.TotalBlocks++
		summary.LengthDistribution[b.Kind][b.Length]++
		totalCost += b.Cost
		switch b.Kind {
		case planner.Reuse:
			summary.ReuseBlocks++
			reuseBases += b.Length
			reuseCost += b.Cost
			summary.MaxReuseLength = max(summary.MaxReuseLength, b.Length)
		case planner.Synthesize:
			summary.SynthBlocks++
			synthBases += b.Length
			summary.MaxSynthLength = max(summary.MaxSynthLength, b.Length)
		}
	}

	if summary.ReuseBlocks > 0 {
		summary.MeanReuseLength = float64(reuseBases) / float64(summary.ReuseBlocks)
	}
	if summary.SynthBlocks > 0 {
		summary.MeanSynthLength = float64(synthBases) / float64(summary.SynthBlocks)
	}
	if total := reuseBases + synthBases; total > 0 {
		summary.ReuseBaseFraction = float64(reuseBases) / float64(total)
	}
	if totalCost > 0 {
		summary.ReuseCostFraction = reuseCost / totalCost
	}
	return summary
}
