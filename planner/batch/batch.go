// Package batch plans many sequences against one oracle in parallel.
// Sequences are independent, so each one gets its own goroutine and DP table;
// the oracle is shared read-only.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/genoplan/genoplan/planner"
	"github.com/genoplan/genoplan/planner/fasta"
)

// Options configures a batch run.
type Options struct {
	MaxBlockLen int
	Cost        planner.CostModel
	Strategy    planner.Strategy
	Oracle      planner.Oracle
	Threads     int // worker goroutines; < 1 means runtime.NumCPU()
}

// Outcome is the result for one input record.
type Outcome struct {
	Label   string
	Length  int
	Skipped bool // empty sequence: zero result, no per-record row
	Result  planner.Result
}

// Run plans every record and returns the outcomes in input order. The first
// planner error cancels the remaining work and is returned.
func Run(ctx context.Context, records []fasta.Record, opts Options) ([]Outcome, error) {
	threads := opts.Threads
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	outcomes := make([]Outcome, len(records))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	start := time.Now()
	var totalBases int64
	for i, rec := range records {
		outcomes[i] = Outcome{Label: rec.Label, Length: len(rec.Seq)}
		totalBases += int64(len(rec.Seq))
		if len(rec.Seq) == 0 {
			outcomes[i].Skipped = true
			continue
		}
		if gCtx.Err() != nil {
			break
		}
		i, rec := i, rec
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r, err := planner.Plan(rec.Seq, opts.MaxBlockLen, opts.Oracle, opts.Cost, opts.Strategy)
			if err != nil {
				return fmt.Errorf("planning %s: %w", rec.Label, err)
			}
			outcomes[i].Result = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logrus.Infof("planned %d records (%s bp) with %s in %s",
		len(records), humanize.Comma(totalBases), opts.Strategy, time.Since(start).Round(time.Millisecond))
	return outcomes, nil
}
