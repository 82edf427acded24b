package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/genoplan/genoplan/planner/batch"
	"github.com/genoplan/genoplan/planner/fasta"
)

var comparisonColumns = []string{"label", "length", "dp_cost", "greedy_cost", "gap"}

// WriteComparison writes one row per non-empty record with the DP and greedy
// costs side by side. Both slices must come from the same records in the same
// order. gap is greedy minus DP and is never negative for a correct planner.
func WriteComparison(out io.Writer, dp, greedy []batch.Outcome) error {
	if len(dp) != len(greedy) {
		return fmt.Errorf("comparing %d dp outcomes with %d greedy outcomes", len(dp), len(greedy))
	}
	writer := csv.NewWriter(out)
	if err := writer.Write(comparisonColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i := range dp {
		d, g := dp[i], greedy[i]
		if d.Label != g.Label {
			return fmt.Errorf("record %d: dp label %q differs from greedy label %q", i, d.Label, g.Label)
		}
		if d.Skipped {
			continue
		}
		row := []string{
			fasta.SanitizeLabel(d.Label),
			strconv.Itoa(d.Length),
			FormatCost(d.Result.Cost),
			FormatCost(g.Result.Cost),
			FormatCost(g.Result.Cost - d.Result.Cost),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing comparison row %s: %w", d.Label, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
