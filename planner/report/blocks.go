package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/genoplan/genoplan/planner/batch"
	"github.com/genoplan/genoplan/planner/fasta"
)

var blockColumns = []string{"label", "start", "end", "kind", "length"}

// WriteBlocks writes the chosen partition of every outcome, one block per row,
// for auditing a plan.
func WriteBlocks(out io.Writer, outcomes []batch.Outcome) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(blockColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, o := range outcomes {
		label := fasta.SanitizeLabel(o.Label)
		for _, b := range o.Result.Blocks {
			row := []string{
				label,
				strconv.Itoa(b.Start),
				strconv.Itoa(b.End),
				b.Kind.String(),
				strconv.Itoa(b.Len()),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing block row for %s: %w", o.Label, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
