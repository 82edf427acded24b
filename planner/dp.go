package planner

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMaxBlockLen is returned when the maximum block length is below 1.
var ErrInvalidMaxBlockLen = errors.New("max block length must be at least 1")

// dpTable holds the prefix costs and the winning choice for every prefix.
// cost[i] is the minimum cost of building seq[:i]; pred[i], kind[i] describe
// the last block [pred[i], i) of that optimum.
type dpTable struct {
	cost []float64
	pred []int
	kind []Kind
	cm   CostModel
}

func newDPTable(n int, cm CostModel) *dpTable {
	t := &dpTable{
		cost: make([]float64, n+1),
		pred: make([]int, n+1),
		kind: make([]Kind, n+1),
		cm:   cm,
	}
	for i := 1; i <= n; i++ {
		t.cost[i] = math.Inf(1)
		t.pred[i] = -1
	}
	return t
}

// relax offers block [j, i) of the given kind as the last block of seq[:i].
// Strict < keeps the first minimum seen, so callers must offer candidates in
// increasing block length.
func (t *dpTable) relax(i, j int, kind Kind) {
	path := t.cost[j] + t.cm.AcquisitionCost(kind, i-j) + t.cm.JunctionCost(j == 0)
	if path < t.cost[i] {
		t.cost[i] = path
		t.pred[i] = j
		t.kind[i] = kind
	}
}

// sweepIncremental evaluates every block ending at i by prepending one base at
// a time and extending the oracle interval of the previous, shorter block.
// After the interval empties no longer block can be reused, so the remaining
// lengths are offered as synthesis only.
func (t *dpTable) sweepIncremental(seq []byte, i, w int, ext Extender) {
	maxW := min(w, i)
	iv := ext.NewSearch()
	reusable := true
	for l := 1; l <= maxW; l++ {
		j := i - l
		if reusable {
			iv, reusable = ext.Extend(iv, seq[j])
		}
		if reusable {
			t.relax(i, j, Reuse)
		} else {
			t.relax(i, j, Synthesize)
		}
	}
}

// sweepUnion evaluates every block ending at i with one-shot queries against
// o. Used when no single incremental oracle is available.
func (t *dpTable) sweepUnion(seq []byte, i, w int, o Oracle) {
	maxW := min(w, i)
	reusable := true
	for l := 1; l <= maxW; l++ {
		j := i - l
		if reusable {
			reusable = o.Exists(seq[j:i])
		}
		if reusable {
			t.relax(i, j, Reuse)
		} else {
			t.relax(i, j, Synthesize)
		}
	}
}

// PlanDP returns the minimum-cost partition of seq into blocks of at most w
// bases. A nil oracle means nothing is reusable.
//
// When oracle is (or wraps exactly one) Extender the sweep runs in O(N*W)
// oracle steps; otherwise every candidate is a separate Exists query.
func PlanDP(seq []byte, w int, oracle Oracle, cm CostModel) (Result, error) {
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

	t := newDPTable(n, cm)
	if ext, ok := single(oracle); ok {
		for i := 1; i <= n; i++ {
			t.sweepIncremental(seq, i, w, ext)
		}
	} else {
		for i := 1; i <= n; i++ {
			t.sweepUnion(seq, i, w, oracle)
		}
	}

	blocks, err := backtrack(n, t.pred, t.kind)
	if err != nil {
		return Result{}, err
	}
	r := NewResult(blocks, cm, n)
	r.Cost = t.cost[n]
	return r, nil
}
