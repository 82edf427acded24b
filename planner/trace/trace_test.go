package trace

import (
	"testing"

	"github.com/genoplan/genoplan/planner"
)

var testCost = planner.NewCostModel(5, 1, 1, 0)

func TestIsValidTraceLevel(t *testing.T) {
	for _, level := range []string{"", "none", "blocks"} {
		if !IsValidTraceLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	if IsValidTraceLevel("decisions") {
		t.Error("expected unknown level to be invalid")
	}
}

func TestRecordPartition_Disabled_NoRecords(t *testing.T) {
	// GIVEN a trace at level none
	pt := NewPlanTrace(TraceLevelNone)

	// WHEN a partition is recorded
	pt.RecordPartition("x", planner.Partition{{Start: 0, End: 4, Kind: planner.Reuse}}, testCost)

	// THEN nothing is kept
	if len(pt.Blocks) != 0 {
		t.Errorf("expected 0 records, got %d", len(pt.Blocks))
	}
}

func TestRecordPartition_NilTrace_NoPanic(t *testing.T) {
	var pt *PlanTrace
	pt.RecordPartition("x", planner.Partition{{Start: 0, End: 1, Kind: planner.Synthesize}}, testCost)
	if pt.Enabled() {
		t.Error("nil trace must report disabled")
	}
}

func TestRecordPartition_Blocks_ChargesJunctionAfterFirst(t *testing.T) {
	// GIVEN a trace at level blocks
	pt := NewPlanTrace(TraceLevelBlocks)

	// WHEN a two-block partition is recorded
	pt.RecordPartition("chr1", planner.Partition{
		{Start: 0, End: 3, Kind: planner.Synthesize},
		{Start: 3, End: 9, Kind: planner.Reuse},
	}, testCost)

	// THEN each block is recorded with its own charge
	if len(pt.Blocks) != 2 {
		t.Fatalf("expected 2 records, got %d", len(pt.Blocks))
	}
	first, second := pt.Blocks[0], pt.Blocks[1]
	if first.Label != "chr1" || first.Start != 0 || first.Length != 3 || first.Kind != planner.Synthesize {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Cost != 3 {
		t.Errorf("first block cost = %g, want 3 (no junction)", first.Cost)
	}
	if second.Start != 3 || second.Length != 6 || second.Kind != planner.Reuse {
		t.Errorf("unexpected second record: %+v", second)
	}
	if second.Cost != 6 {
		t.Errorf("second block cost = %g, want 6 (pcr + join)", second.Cost)
	}
}
