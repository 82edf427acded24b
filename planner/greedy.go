package planner

import "fmt"

// PlanGreedy builds a partition left to right. At each position it takes the
// longest reusable block of at most w bases; when no length is reusable it
// synthesizes exactly one base and moves on. There is no optimality guarantee.
// A nil oracle means nothing is reusable.
func PlanGreedy(seq []byte, w int, oracle Oracle, cm CostModel) (Result, error) {
	if w < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidMaxBlockLen, w)
	}
	n := len(seq)
	if n == 0 {
		return Result{}, nil
	}
	if oracle == nil {
		oracle = Union(nil)
	}

	var blocks Partition
	for i := 0; i < n; {
		l := longestReusable(seq, i, w, oracle)
		kind := Reuse
		if l == 0 {
			l, kind = 1, Synthesize
		}
		blocks = append(blocks, Block{Start: i, End: i + l, Kind: kind})
		i += l
	}
	return NewResult(blocks, cm, n), nil
}

// longestReusable returns the largest l <= min(w, len(seq)-i) such that
// seq[i:i+l] occurs in the source, or 0 if none does.
func longestReusable(seq []byte, i, w int, oracle Oracle) int {
	for l := min(w, len(seq)-i); l >= 1; l-- {
		if oracle.Exists(seq[i : i+l]) {
			return l
		}
	}
	return 0
}
