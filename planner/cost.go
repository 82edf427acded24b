package planner

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCostModel is returned by CostModel.Validate.
var ErrInvalidCostModel = errors.New("invalid cost model")

// Kind is how a block is acquired.
type Kind uint8

const (
	// Reuse amplifies the block from the source genome.
	Reuse Kind = iota
	// Synthesize builds the block de novo.
	Synthesize
)

func (k Kind) String() string {
	switch k {
	case Reuse:
		return "reuse"
	case Synthesize:
		return "synth"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// CostModel holds the numeric parameters of a construction plan.
//
// Synthesis of a block of length L costs SynthLinear*L + SynthQuad*L^2.
// Reuse costs PCR regardless of length. Join is charged for every block
// except the first.
type CostModel struct {
	PCR         float64 `yaml:"pcr"`
	Join        float64 `yaml:"join"`
	SynthLinear float64 `yaml:"synth_linear"`
	SynthQuad   float64 `yaml:"synth_quad"`
}

// NewCostModel creates a CostModel with all fields explicitly specified.
func NewCostModel(pcr, join, synthLinear, synthQuad float64) CostModel {
	return CostModel{PCR: pcr, Join: join, SynthLinear: synthLinear, SynthQuad: synthQuad}
}

// Validate checks that every parameter is a finite, non-negative number.
func (cm CostModel) Validate() error {
	params := []struct {
		name string
		val  float64
	}{
		{"pcr", cm.PCR},
		{"join", cm.Join},
		{"synth_linear", cm.SynthLinear},
		{"synth_quad", cm.SynthQuad},
	}
	for _, p := range params {
		if math.IsNaN(p.val) || math.IsInf(p.val, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidCostModel, p.name, p.val)
		}
		if p.val < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %f", ErrInvalidCostModel, p.name, p.val)
		}
	}
	return nil
}

// SynthesisCost is the cost of synthesizing a block of length l.
func (cm CostModel) SynthesisCost(l int) float64 {
	x := float64(l)
	return cm.SynthLinear*x + cm.SynthQuad*x*x
}

// AcquisitionCost is the cost of acquiring a block of length l by kind.
func (cm CostModel) AcquisitionCost(kind Kind, l int) float64 {
	if kind == Reuse {
		return cm.PCR
	}
	return cm.SynthesisCost(l)
}

// JunctionCost is the join charge preceding a block; the first block has none.
func (cm CostModel) JunctionCost(first bool) float64 {
	if first {
		return 0
	}
	return cm.Join
}

// BlockCost is the total charge for one block: acquisition plus junction.
func (cm CostModel) BlockCost(kind Kind, l int, first bool) float64 {
	return cm.AcquisitionCost(kind, l) + cm.JunctionCost(first)
}
