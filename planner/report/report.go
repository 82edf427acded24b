// Package report formats planning outcomes as CSV.
//
// Output layout, in order:
//
//	<file>,<label>,<length>,<cost>            one row per non-empty record
//	STATS_TOTAL,<reuse>,<synth>,<joins>,<segments>,<reuse_bp>,<synth_bp>
//	<file>,TOTAL,<length>,<cost>
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/genoplan/genoplan/planner"
	"github.com/genoplan/genoplan/planner/batch"
	"github.com/genoplan/genoplan/planner/fasta"
)

// Totals accumulates run-wide statistics. Skipped records contribute their
// zero stats.
type Totals struct {
	planner.Stats
	Records int
	Skipped int
}

// Add folds one outcome into the totals.
func (t *Totals) Add(o batch.Outcome) {
	t.Records++
	if o.Skipped {
		t.Skipped++
		return
	}
	t.Stats.Add(o.Result.Stats)
}

// Writer emits the CSV report for one target file.
type Writer struct {
	csv      *csv.Writer
	filename string
	totals   Totals
}

// NewWriter creates a Writer. targetPath is reported by its base name.
func NewWriter(w io.Writer, targetPath string) *Writer {
	return &Writer{csv: csv.NewWriter(w), filename: filepath.Base(targetPath)}
}

// FormatCost renders a cost with the shortest exact decimal representation.
func FormatCost(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

// WriteOutcome writes the row for o (nothing for skipped records) and adds it
// to the totals.
func (w *Writer) WriteOutcome(o batch.Outcome) error {
	w.totals.Add(o)
	if o.Skipped {
		return nil
	}
	row := []string{
		w.filename,
		fasta.SanitizeLabel(o.Label),
		strconv.Itoa(o.Length),
		FormatCost(o.Result.Cost),
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("writing row %s: %w", o.Label, err)
	}
	return nil
}

// Close writes the STATS_TOTAL and TOTAL lines and flushes.
func (w *Writer) Close() error {
	t := w.totals
	stats := []string{
		"STATS_TOTAL",
		strconv.FormatUint(t.ReuseMoves, 10),
		strconv.FormatUint(t.SynthMoves, 10),
		strconv.FormatUint(t.Joins, 10),
		strconv.FormatUint(t.Segments, 10),
		strconv.FormatUint(t.ReuseBases, 10),
		strconv.FormatUint(t.SynthBases, 10),
	}
	if err := w.csv.Write(stats); err != nil {
		return fmt.Errorf("writing stats line: %w", err)
	}
	total := []string{w.filename, "TOTAL", strconv.FormatUint(t.Length, 10), FormatCost(t.Cost)}
	if err := w.csv.Write(total); err != nil {
		return fmt.Errorf("writing total line: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Totals returns the statistics accumulated so far.
func (w *Writer) Totals() Totals {
	return w.totals
}

// WriteAll writes every outcome followed by the totals.
func WriteAll(out io.Writer, targetPath string, outcomes []batch.Outcome) (Totals, error) {
	w := NewWriter(out, targetPath)
	for _, o := range outcomes {
		if err := w.WriteOutcome(o); err != nil {
			return Totals{}, err
		}
	}
	if err := w.Close(); err != nil {
		return Totals{}, err
	}
	return w.Totals(), nil
}
