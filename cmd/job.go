package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/genoplan/genoplan/planner"
	"github.com/genoplan/genoplan/planner/batch"
	"github.com/genoplan/genoplan/planner/fasta"
	"github.com/genoplan/genoplan/planner/fmindex"
	"github.com/genoplan/genoplan/planner/report"
	"github.com/genoplan/genoplan/planner/trace"
)

// planJob is one fully specified planning run.
type planJob struct {
	Strategy    planner.Strategy
	MaxBlockLen int
	Cost        planner.CostModel
	Target      string
	Sources     []string
	Threads     int
	Trace       trace.TraceLevel
	BlocksOut   string
}

// loadOracle opens every source index. A single index is returned as is so
// the DP planner can use incremental extension; several become a Union.
func loadOracle(paths []string) (planner.Oracle, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no source index given")
	}
	union := make(planner.Union, 0, len(paths))
	for _, p := range paths {
		idx, err := fmindex.LoadFile(p)
		if err != nil {
			return nil, err
		}
		union = append(union, idx)
	}
	if len(union) == 1 {
		return union[0], nil
	}
	logrus.Infof("using %d source indexes; DP falls back to per-candidate queries", len(union))
	return union, nil
}

// planInputs are the loaded sources and target records of a job.
type planInputs struct {
	Oracle  planner.Oracle
	Records []fasta.Record
}

// loadInputs opens the source indexes and reads the target FASTA of j.
func loadInputs(j planJob) (planInputs, error) {
	oracle, err := loadOracle(j.Sources)
	if err != nil {
		return planInputs{}, err
	}
	records, err := fasta.Load(j.Target)
	if err != nil {
		return planInputs{}, err
	}
	return planInputs{Oracle: oracle, Records: records}, nil
}

// planWith plans every target record of in with the strategy of j.
func planWith(ctx context.Context, j planJob, in planInputs) ([]batch.Outcome, error) {
	return batch.Run(ctx, in.Records, batch.Options{
		MaxBlockLen: j.MaxBlockLen,
		Cost:        j.Cost,
		Strategy:    j.Strategy,
		Oracle:      in.Oracle,
		Threads:     j.Threads,
	})
}

// runJob plans j and writes the CSV report to out. The blocks file is written
// first so a failure there leaves out untouched.
func runJob(ctx context.Context, j planJob, out io.Writer) error {
	in, err := loadInputs(j)
	if err != nil {
		return err
	}
	outcomes, err := planWith(ctx, j, in)
	if err != nil {
		return err
	}
	if j.BlocksOut != "" {
		if err := writeBlocksFile(j.BlocksOut, outcomes); err != nil {
			return err
		}
	}
	if _, err := report.WriteAll(out, j.Target, outcomes); err != nil {
		return err
	}
	if j.Trace == trace.TraceLevelBlocks {
		logTraceSummary(j, outcomes)
	}
	return nil
}

func writeBlocksFile(path string, outcomes []batch.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating blocks file: %w", err)
	}
	if err := report.WriteBlocks(f, outcomes); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func logTraceSummary(j planJob, outcomes []batch.Outcome) {
	pt := trace.NewPlanTrace(j.Trace)
	for _, o := range outcomes {
		pt.RecordPartition(o.Label, o.Result.Blocks, j.Cost)
	}
	s := trace.Summarize(pt)
	logrus.Infof("trace: %d blocks (%d reuse, %d synth); reuse length mean=%.1f max=%d; synth length mean=%.1f max=%d",
		s.TotalBlocks, s.ReuseBlocks, s.SynthBlocks, s.MeanReuseLength, s.MaxReuseLength, s.MeanSynthLength, s.MaxSynthLength)
	logrus.Infof("trace: reused %.1f%% of bases for %.1f%% of cost", 100*s.ReuseBaseFraction, 100*s.ReuseCostFraction)
}
