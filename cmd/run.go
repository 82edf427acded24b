package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/genoplan/genoplan/planner/runspec"
	"github.com/genoplan/genoplan/planner/trace"
)

var runSpecPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan a target genome from a YAML run specification",
	Long: `Plan a target genome using every setting from a YAML run specification:

  version: "1"
  strategy: dp            # or greedy
  max_block_len: 500
  cost:
    pcr: 5
    join: 1.5
    synth_linear: 0.2
    synth_quad: 0.0001
  target: target.fasta
  sources: [source.fm]
  threads: 8
  trace: blocks
  blocks_out: blocks.csv

Unknown keys are rejected. Output is the same CSV as the dp and greedy commands.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := runspec.LoadRunSpec(runSpecPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid run spec %s: %v", runSpecPath, err)
		}
		if err := runJob(cmd.Context(), jobFromSpec(spec), os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// jobFromSpec converts a validated RunSpec into a planJob.
func jobFromSpec(spec *runspec.RunSpec) planJob {
	return planJob{
		Strategy:    spec.PlanStrategy(),
		MaxBlockLen: spec.MaxBlockLen,
		Cost:        spec.Cost,
		Target:      spec.Target,
		Sources:     spec.Sources,
		Threads:     spec.Threads,
		Trace:       trace.TraceLevel(spec.Trace),
		BlocksOut:   spec.BlocksOut,
	}
}

func init() {
	runCmd.Flags().StringVar(&runSpecPath, "config", "", "Path to the YAML run specification")
	_ = runCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(runCmd)
}
