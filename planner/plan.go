package planner

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrUnknownStrategy is returned for strategy names outside ValidStrategies.
var ErrUnknownStrategy = errors.New("unknown planning strategy")

// Strategy selects a planner.
type Strategy string

const (
	// StrategyDP is the optimal dynamic-programming planner.
	StrategyDP Strategy = "dp"
	// StrategyGreedy is the longest-reusable-block heuristic.
	StrategyGreedy Strategy = "greedy"
)

// ValidStrategies is the set of recognized strategy names.
var ValidStrategies = map[Strategy]bool{StrategyDP: true, StrategyGreedy: true}

// ParseStrategy converts a name to a Strategy. The empty name selects DP.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return StrategyDP, nil
	}
	s := Strategy(name)
	if !ValidStrategies[s] {
		return "", fmt.Errorf("%w %q; valid: dp, greedy", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Plan validates its inputs and runs the planner selected by strategy.
func Plan(seq []byte, w int, oracle Oracle, cm CostModel, strategy Strategy) (Result, error) {
	if err := cm.Validate(); err != nil {
		return Result{}, err
	}
	var (
		r   Result
		err error
	)
	switch strategy {
	case StrategyDP, "":
		r, err = PlanDP(seq, w, oracle, cm)
	case StrategyGreedy:
		r, err = PlanGreedy(seq, w, oracle, cm)
	default:
		return Result{}, fmt.Errorf("%w %q", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		return Result{}, err
	}
	logrus.Debugf("planned %d bp with %s: cost=%g segments=%d reuse=%d synth=%d",
		len(seq), strategy, r.Cost, r.Segments, r.ReuseMoves, r.SynthMoves)
	return r, nil
}
