package cmd

import (
	"fmt"
	"strconv"

	"github.com/genoplan/genoplan/planner"
)

// planUsage is the positional argument list shared by dp, greedy and compare.
const planUsage = "<W> <target.fasta> <pcr> <join> <synth_linear> [synth_quad] <source_index.fm>"

const planArgsHelp = `Arguments:
  W                Max block length (bp). Reflects experimental PCR/synthesis limits.
  target.fasta     FASTA file of the genome to construct (target).
  pcr              Fixed cost per reused (PCR-amplified) block, regardless of length.
                   A block is reusable if it occurs as an exact substring of the source.
  join             Fixed cost per junction between adjacent blocks.
                   Not charged for the first block (no preceding junction).
  synth_linear     Per-base synthesis cost coefficient (linear term c_s).
                   Synthesis cost = c_s * L  (for a block of length L).
  synth_quad       [optional] Quadratic synthesis cost coefficient (c_s2).
                   Synthesis cost = c_s * L + c_s2 * L^2.
                   Omit (or set to 0) for purely linear synthesis cost.
  source_index.fm  FM-index file built over the source genome (via "genoplan index").`

// planArgs are the parsed positional arguments of a planning command.
type planArgs struct {
	MaxBlockLen int
	Target      string
	Cost        planner.CostModel
	Source      string
}

type costArg struct {
	name string
	dst  *float64
	arg  string
}

// parsePlanArgs parses W target pcr join synth_linear [synth_quad] source.
func parsePlanArgs(args []string) (planArgs, error) {
	if len(args) != 6 && len(args) != 7 {
		return planArgs{}, fmt.Errorf("expected 6 or 7 arguments (%s), got %d", planUsage, len(args))
	}
	var (
		pa  planArgs
		err error
	)
	if pa.MaxBlockLen, err = strconv.Atoi(args[0]); err != nil {
		return planArgs{}, fmt.Errorf("parsing W %q: %w", args[0], err)
	}
	if pa.MaxBlockLen < 1 {
		return planArgs{}, fmt.Errorf("%w: got %d", planner.ErrInvalidMaxBlockLen, pa.MaxBlockLen)
	}
	pa.Target = args[1]

	costs := []costArg{
		{"pcr", &pa.Cost.PCR, args[2]},
		{"join", &pa.Cost.Join, args[3]},
		{"synth_linear", &pa.Cost.SynthLinear, args[4]},
	}
	pa.Source = args[5]
	if len(args) == 7 {
		costs = append(costs, costArg{"synth_quad", &pa.Cost.SynthQuad, args[5]})
		pa.Source = args[6]
	}
	for _, c := range costs {
		if *c.dst, err = strconv.ParseFloat(c.arg, 64); err != nil {
			return planArgs{}, fmt.Errorf("parsing %s %q: %w", c.name, c.arg, err)
		}
	}
	if err := pa.Cost.Validate(); err != nil {
		return planArgs{}, err
	}
	return pa, nil
}
