package cmd

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/genoplan/genoplan/planner"
	"github.com/genoplan/genoplan/planner/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare " + planUsage,
	Short: "Plan every record with both DP and greedy and report the cost gap",
	Long: `Plan every record with both the optimal DP planner and the greedy heuristic.

Output (CSV): label,length,dp_cost,greedy_cost,gap
gap is greedy_cost - dp_cost and is never negative.

` + planArgsHelp,
	Args: cobra.RangeArgs(6, 7),
	Run: func(cmd *cobra.Command, args []string) {
		pa, err := parsePlanArgs(args)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		j := planJob{
			MaxBlockLen: pa.MaxBlockLen,
			Cost:        pa.Cost,
			Target:      pa.Target,
			Sources:     append([]string{pa.Source}, extraSources...),
			Threads:     threads,
		}
		if err := runComparison(cmd.Context(), j, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runComparison plans j with both strategies and writes the comparison CSV.
// Sources and targets are loaded once and shared by both runs.
func runComparison(ctx context.Context, j planJob, out io.Writer) error {
	in, err := loadInputs(j)
	if err != nil {
		return err
	}
	j.Strategy = planner.StrategyDP
	dp, err := planWith(ctx, j, in)
	if err != nil {
		return err
	}
	j.Strategy = planner.StrategyGreedy
	greedy, err := planWith(ctx, j, in)
	if err != nil {
		return err
	}
	return report.WriteComparison(out, dp, greedy)
}

func init() {
	compareCmd.Flags().StringSliceVar(&extraSources, "extra-source", nil, "Additional source index files; a block is reusable if any source contains it")
	compareCmd.Flags().IntVar(&threads, "threads", 0, "Records planned in parallel (0 = number of CPUs)")
	rootCmd.AddCommand(compareCmd)
}
