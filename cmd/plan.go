package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/genoplan/genoplan/planner"
	"github.com/genoplan/genoplan/planner/trace"
)

var (
	extraSources []string // Additional source indexes (union fallback)
	threads      int      // Worker goroutines across records
	traceLevel   string   // Trace verbosity
	blocksOut    string   // Path for the per-block audit CSV
)

const planOutputHelp = `Output (CSV, one row per record plus summary lines):
  filename,label,length_bp,total_cost
  STATS_TOTAL,reuse_moves,synth_moves,joins,segments,reuse_bases,synth_bases
  filename,TOTAL,length_bp,total_cost`

// newPlanCmd builds the dp and greedy commands, which differ only in strategy.
func newPlanCmd(strategy planner.Strategy, short, long, examples string) *cobra.Command {
	return &cobra.Command{
		Use:     string(strategy) + " " + planUsage,
		Short:   short,
		Long:    long + "\n\n" + planArgsHelp + "\n\n" + planOutputHelp,
		Example: examples,
		Args:    cobra.RangeArgs(6, 7),
		Run: func(cmd *cobra.Command, args []string) {
			pa, err := parsePlanArgs(args)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			if !trace.IsValidTraceLevel(traceLevel) {
				logrus.Fatalf("Invalid trace level: %s", traceLevel)
			}
			j := planJob{
				Strategy:    strategy,
				MaxBlockLen: pa.MaxBlockLen,
				Cost:        pa.Cost,
				Target:      pa.Target,
				Sources:     append([]string{pa.Source}, extraSources...),
				Threads:     threads,
				Trace:       trace.TraceLevel(traceLevel),
				BlocksOut:   blocksOut,
			}
			if err := runJob(cmd.Context(), j, os.Stdout); err != nil {
				logrus.Fatalf("%v", err)
			}
		},
	}
}

var dpCmd = newPlanCmd(planner.StrategyDP,
	"Optimal (DP) minimum-cost genome construction planner",
	`Optimal (DP) minimum-cost genome construction planner.
Partitions the target genome into blocks of length <= W, choosing reuse
(PCR) or synthesis for each block to minimise total cost.`,
	`  # Linear synthesis cost:
  genoplan dp 500 target.fasta 5 1.5 0.2 source.fm

  # Nonlinear synthesis cost (W=1000):
  genoplan dp 1000 target.fasta 5 1.5 0.2 1e-4 source.fm`)

var greedyCmd = newPlanCmd(planner.StrategyGreedy,
	"Replication-first greedy genome construction planner",
	`Replication-first greedy genome construction planner.
At each position, greedily selects the longest reusable block (up to W bp);
falls back to synthesizing a single base if no reusable block is found.`,
	`  genoplan greedy 500 target.fasta 5 1.5 0.2 source.fm
  genoplan greedy 1000 target.fasta 5 1.5 0.2 1e-4 source.fm`)

func init() {
	for _, c := range []*cobra.Command{dpCmd, greedyCmd} {
		c.Flags().StringSliceVar(&extraSources, "extra-source", nil, "Additional source index files; a block is reusable if any source contains it")
		c.Flags().IntVar(&threads, "threads", 0, "Records planned in parallel (0 = number of CPUs)")
		c.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, blocks); blocks logs a block summary at info level")
		c.Flags().StringVar(&blocksOut, "blocks-out", "", "Write the chosen blocks of every record to this CSV file")
		rootCmd.AddCommand(c)
	}
}
