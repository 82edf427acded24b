package planner

import (
	"errors"
	"fmt"
)

// ErrBrokenBacktrack is returned when a DP predecessor chain does not lead
// back to position 0. It indicates an internal inconsistency.
var ErrBrokenBacktrack = errors.New("backtrack reached a position without a valid predecessor")

// Block is the half-open interval [Start, End) of a target sequence, acquired
// as a single unit.
type Block struct {
	Start int
	End   int
	Kind  Kind
}

// Len returns the number of bases in the block.
func (b Block) Len() int {
	return b.End - b.Start
}

// Partition is an ordered list of blocks covering a sequence.
type Partition []Block

// Validate checks that p covers [0, n) contiguously with block lengths in
// [1, w]. An empty partition is valid only for n == 0.
func (p Partition) Validate(n, w int) error {
	if len(p) == 0 {
		if n != 0 {
			return fmt.Errorf("empty partition for sequence of length %d", n)
		}
		return nil
	}
	if p[0].Start != 0 {
		return fmt.Errorf("first block starts at %d, want 0", p[0].Start)
	}
	for k, b := range p {
		if b.Len() < 1 || b.Len() > w {
			return fmt.Errorf("block %d [%d,%d) has length %d outside [1,%d]", k, b.Start, b.End, b.Len(), w)
		}
		if k > 0 && p[k-1].End != b.Start {
			return fmt.Errorf("block %d starts at %d but block %d ends at %d", k, b.Start, k-1, p[k-1].End)
		}
	}
	if last := p[len(p)-1]; last.End != n {
		return fmt.Errorf("last block ends at %d, want %d", last.End, n)
	}
	return nil
}

// Cost recomputes the total cost of p under cm. Terms are summed in the same
// order as the DP recurrence, so the result matches DP[N] exactly.
func (p Partition) Cost(cm CostModel) float64 {
	total := 0.0
	for k, b := range p {
		total = total + cm.AcquisitionCost(b.Kind, b.Len()) + cm.JunctionCost(k == 0)
	}
	return total
}

// Stats are the aggregate counts of a plan. They are additive, so run totals
// are the sum of per-sequence stats.
type Stats struct {
	Cost       float64
	ReuseMoves uint64
	SynthMoves uint64
	Joins      uint64
	Segments   uint64
	ReuseBases uint64
	SynthBases uint64
	Length     uint64
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Cost += o.Cost
	s.ReuseMoves += o.ReuseMoves
	s.SynthMoves += o.SynthMoves
	s.Joins += o.Joins
	s.Segments += o.Segments
	s.ReuseBases += o.ReuseBases
	s.SynthBases += o.SynthBases
	s.Length += o.Length
}

// Result is the outcome of planning one sequence.
type Result struct {
	Stats
	Blocks Partition
}

// NewResult derives a Result strictly from a partition of a sequence of
// length n. The cost is recomputed from the blocks.
func NewResult(p Partition, cm CostModel, n int) Result {
	r := Result{Blocks: p}
	r.Length = uint64(n)
	r.Cost = p.Cost(cm)
	for _, b := range p {
		r.Segments++
		if b.Kind == Reuse {
			r.ReuseMoves++
			r.ReuseBases += uint64(b.Len())
		} else {
			r.SynthMoves++
			r.SynthBases += uint64(b.Len())
		}
	}
	if r.Segments > 0 {
		r.Joins = r.Segments - 1
	}
	return r
}

// backtrack follows predecessor links from n to 0 and returns the blocks in
// sequence order.
func backtrack(n int, pred []int, kind []Kind) (Partition, error) {
	var rev Partition
	for cur := n; cur > 0; {
		p := pred[cur]
		if p < 0 || p >= cur {
			return nil, fmt.Errorf("%w: position %d (pred %d)", ErrBrokenBacktrack, cur, p)
		}
		rev = append(rev, Block{Start: p, End: cur, Kind: kind[cur]})
		cur = p
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, nil
}
