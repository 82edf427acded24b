package planner_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoplan/genoplan/planner"
	"github.com/genoplan/genoplan/planner/fmindex"
)

// substringOracle answers Exists by scanning the source; it takes the DP's
// one-shot fallback path.
type substringOracle []byte

func (o substringOracle) Exists(p []byte) bool { return bytes.Contains(o, p) }

func mustIndex(t *testing.T, sources ...string) *fmindex.Index {
	t.Helper()
	raw := make([][]byte, len(sources))
	for i, s := range sources {
		raw[i] = []byte(s)
	}
	idx, err := fmindex.Build(raw, 4)
	require.NoError(t, err)
	return idx
}

func randomSeq(rng *rand.Rand, n int) []byte {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[rng.Intn(4)]
	}
	return b
}

// bruteForce enumerates every partition of seq and returns the cheapest cost,
// pricing each block by reusability exactly as the DP recurrence does.
func bruteForce(seq []byte, w int, o planner.Oracle, cm planner.CostModel) float64 {
	var best func(start int) float64
	best = func(start int) float64 {
		if start == len(seq) {
			return 0
		}
		min := -1.0
		for l := 1; l <= w && start+l <= len(seq); l++ {
			kind := planner.Synthesize
			if o.Exists(seq[start : start+l]) {
				kind = planner.Reuse
			}
			c := cm.BlockCost(kind, l, start == 0) + best(start+l)
			if min < 0 || c < min {
				min = c
			}
		}
		return min
	}
	return best(0)
}

func TestPlanDP_IdenticalSource_OneReuseBlock(t *testing.T) {
	// GIVEN target AAAA, source AAAA, W=4, pcr=5, join=1, linear=1
	cm := planner.NewCostModel(5, 1, 1, 0)

	// WHEN planned with DP
	r, err := planner.PlanDP([]byte("AAAA"), 4, mustIndex(t, "AAAA"), cm)

	// THEN a single reuse block of length 4 costs 5 with no junction
	require.NoError(t, err)
	assert.Equal(t, 5.0, r.Cost)
	assert.Equal(t, planner.Partition{{Start: 0, End: 4, Kind: planner.Reuse}}, r.Blocks)
	assert.Equal(t, uint64(0), r.Joins)
	assert.Equal(t, uint64(4), r.ReuseBases)
}

func TestPlanDP_NoSharedSubstrings_SingleSynthesisBlock(t *testing.T) {
	// GIVEN target ACGT against source TTTT
	cm := planner.NewCostModel(5, 1, 1, 0)

	// WHEN planned with DP
	r, err := planner.PlanDP([]byte("ACGT"), 4, mustIndex(t, "TTTT"), cm)

	// THEN one synthesis block of length 4 (cost 4) beats any split
	require.NoError(t, err)
	assert.Equal(t, 4.0, r.Cost)
	assert.Equal(t, planner.Partition{{Start: 0, End: 4, Kind: planner.Synthesize}}, r.Blocks)
	assert.Equal(t, uint64(1), r.SynthMoves)
	assert.Equal(t, uint64(4), r.SynthBases)
}

func TestPlanDP_EmptySequence_ZeroResult(t *testing.T) {
	r, err := planner.PlanDP(nil, 4, mustIndex(t, "ACGT"), planner.NewCostModel(5, 1, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, planner.Result{}, r)
}

func TestPlanDP_InvalidMaxBlockLen_ReturnsError(t *testing.T) {
	_, err := planner.PlanDP([]byte("ACGT"), 0, nil, planner.NewCostModel(5, 1, 1, 0))
	assert.True(t, errors.Is(err, planner.ErrInvalidMaxBlockLen), "got %v", err)
}

func TestPlanDP_NilOracle_AllSynthesis(t *testing.T) {
	// GIVEN a quadratic synthesis term that makes long blocks expensive
	cm := planner.NewCostModel(5, 1, 1, 1)

	// WHEN planned without any source
	r, err := planner.PlanDP([]byte("ACGTAC"), 6, nil, cm)

	// THEN every block is synthesized; with L + L^2 plus join 1, length-1
	// blocks (cost 2 each, plus 5 joins) are cheapest: 6*2 + 5 = 17
	require.NoError(t, err)
	assert.Equal(t, uint64(0), r.ReuseMoves)
	assert.Equal(t, 17.0, r.Cost)
	assert.Equal(t, uint64(6), r.Segments)
}

func TestPlanDP_TieKeepsShortestBlock(t *testing.T) {
	// GIVEN costs where a 1+1 split and a single 2-block synthesis tie:
	// synth(2) = 2, synth(1) + join + synth(1) = 1 + 0 + 1 with free joins
	cm := planner.NewCostModel(100, 0, 1, 0)

	// WHEN planned
	r, err := planner.PlanDP([]byte("AC"), 2, nil, cm)

	// THEN the first minimum in the ascending sweep (length 1 ending at 2) wins
	require.NoError(t, err)
	assert.Equal(t, 2.0, r.Cost)
	assert.Equal(t, planner.Partition{
		{Start: 0, End: 1, Kind: planner.Synthesize},
		{Start: 1, End: 2, Kind: planner.Synthesize},
	}, r.Blocks)
}

func TestPlanDP_ReusablePrefixesPricedAsReuse(t *testing.T) {
	// GIVEN a reusable block whose synthesis would be cheaper than PCR
	cm := planner.NewCostModel(5, 0, 1, 0)

	// WHEN the whole target is in the source
	r, err := planner.PlanDP([]byte("AC"), 2, mustIndex(t, "AC"), cm)

	// THEN reusability decides the kind: the block is priced as reuse
	require.NoError(t, err)
	assert.Equal(t, 5.0, r.Cost)
	assert.Equal(t, uint64(1), r.ReuseMoves)
}

func TestPlanDP_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cms := []planner.CostModel{
		planner.NewCostModel(5, 1, 1, 0),
		planner.NewCostModel(3, 0.5, 0.7, 0.2),
		planner.NewCostModel(1, 2, 0.1, 0),
	}
	for trial := 0; trial < 60; trial++ {
		src := randomSeq(rng, 12)
		seq := randomSeq(rng, 1+rng.Intn(8))
		w := 1 + rng.Intn(5)
		cm := cms[trial%len(cms)]

		r, err := planner.PlanDP(seq, w, mustIndex(t, string(src)), cm)
		require.NoError(t, err)
		assert.InDelta(t, bruteForce(seq, w, substringOracle(src), cm), r.Cost, 1e-9,
			"seq=%s src=%s w=%d", seq, src, w)
	}
}

func TestPlanDP_IncrementalAndFallbackAgree(t *testing.T) {
	// GIVEN the same source behind an incremental index and a scan-only oracle
	rng := rand.New(rand.NewSource(11))
	cm := planner.NewCostModel(4, 1.5, 0.3, 0.01)
	for trial := 0; trial < 20; trial++ {
		src := randomSeq(rng, 200)
		seq := append(append(randomSeq(rng, 30), src[50:120]...), randomSeq(rng, 30)...)

		// WHEN both DP paths plan the target
		fast, err := planner.PlanDP(seq, 25, mustIndex(t, string(src)), cm)
		require.NoError(t, err)
		slow, err := planner.PlanDP(seq, 25, substringOracle(src), cm)
		require.NoError(t, err)

		// THEN the partitions and costs are identical
		assert.Equal(t, slow.Blocks, fast.Blocks)
		assert.Equal(t, slow.Cost, fast.Cost)
	}
}

func TestPlanDP_UnionOfSources(t *testing.T) {
	// GIVEN a target whose halves come from two different sources
	cm := planner.NewCostModel(5, 1, 1, 0)
	u := planner.Union{mustIndex(t, "GGGGGGGGAAAAAAAA"), mustIndex(t, "TTTTTTTTCCCCCCCC")}

	// WHEN planned against the union
	r, err := planner.PlanDP([]byte("AAAAAAAACCCCCCCC"), 16, u, cm)

	// THEN each half is one reuse block
	require.NoError(t, err)
	assert.Equal(t, planner.Partition{
		{Start: 0, End: 8, Kind: planner.Reuse},
		{Start: 8, End: 16, Kind: planner.Reuse},
	}, r.Blocks)
	assert.Equal(t, 11.0, r.Cost)
}

func TestPlanDP_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := randomSeq(rng, 300)
	seq := randomSeq(rng, 150)
	idx := mustIndex(t, string(src))
	cm := planner.NewCostModel(2, 1, 0.4, 0.001)

	first, err := planner.PlanDP(seq, 40, idx, cm)
	require.NoError(t, err)
	second, err := planner.PlanDP(seq, 40, idx, cm)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlanDP_PartitionInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src := randomSeq(rng, 500)
	idx := mustIndex(t, string(src))
	cm := planner.NewCostModel(3, 1, 0.5, 0.02)
	for trial := 0; trial < 25; trial++ {
		seq := randomSeq(rng, 1+rng.Intn(120))
		w := 1 + rng.Intn(30)

		r, err := planner.PlanDP(seq, w, idx, cm)
		require.NoError(t, err)

		require.NoError(t, r.Blocks.Validate(len(seq), w))
		assert.Equal(t, r.Segments-1, r.Joins)
		assert.Equal(t, uint64(len(seq)), r.ReuseBases+r.SynthBases)
		assert.Equal(t, r.Blocks.Cost(cm), r.Cost, "DP[N] equals the partition's recomputed cost")
		for _, b := range r.Blocks {
			assert.Equal(t, b.Kind == planner.Reuse, idx.Exists(seq[b.Start:b.End]),
				"block [%d,%d) kind must follow reusability", b.Start, b.End)
		}
	}
}

func TestPlanDP_ZeroQuadReproducesLinearCost(t *testing.T) {
	seq := []byte("ACGTACGTAC")
	linear, err := planner.PlanDP(seq, 10, nil, planner.NewCostModel(5, 1, 0.5, 0))
	require.NoError(t, err)
	assert.Equal(t, 5.0, linear.Cost, "one synthesis block of 10 bases at 0.5/base")
}

// countingExtender records how many Extend calls each sweep makes. Every
// sweep starts with NewSearch.
type countingExtender struct {
	planner.Extender
	perSweep []int
}

func (c *countingExtender) NewSearch() planner.Interval {
	c.perSweep = append(c.perSweep, 0)
	return c.Extender.NewSearch()
}

func (c *countingExtender) Extend(iv planner.Interval, b byte) (planner.Interval, bool) {
	c.perSweep[len(c.perSweep)-1]++
	return c.Extender.Extend(iv, b)
}

func TestPlanDP_IncrementalSweepStopsExtendingOnceEmpty(t *testing.T) {
	// GIVEN a target that shares short runs with the source
	source := "ACGTACGGTCA"
	target := []byte("ACGTTTACGGTCAGGA")
	const w = 6
	ext := &countingExtender{Extender: mustIndex(t, source)}

	// WHEN planned with DP
	_, err := planner.PlanDP(target, w, ext, planner.NewCostModel(5, 1, 1, 0))
	require.NoError(t, err)

	// THEN the sweep ending at i extends up to the first absent length and no further
	require.Len(t, ext.perSweep, len(target))
	for i := 1; i <= len(target); i++ {
		maxW := min(w, i)
		want := maxW
		for l := 1; l <= maxW; l++ {
			if !bytes.Contains([]byte(source), target[i-l:i]) {
				want = l
				break
			}
		}
		assert.Equal(t, want, ext.perSweep[i-1], "sweep ending at %d", i)
	}
}
