// Package fmindex implements an FM-index over a source genome. It answers
// exact substring membership for the planners, both as one-shot queries and
// by incremental backward extension.
package fmindex

import (
	"errors"
	"fmt"
	"math"

	"github.com/genoplan/genoplan/planner"
)

// DefaultSampleRate is the default spacing of occurrence checkpoints.
const DefaultSampleRate = 64

// Symbol codes. The sentinel terminates the text, the separator sits between
// source records so no match spans two records.
const (
	symSentinel byte = iota
	symSeparator
	symA
	symC
	symG
	symT
	sigma
)

// ErrInvalidSampleRate is returned by Build for sample rates below 1 or above
// the 32-bit limit of the file format.
var ErrInvalidSampleRate = errors.New("sample rate must be between 1 and 2^32-1")

var codeOf = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = sigma
	}
	t['A'], t['a'] = symA, symA
	t['C'], t['c'] = symC, symC
	t['G'], t['g'] = symG, symG
	t['T'], t['t'] = symT, symT
	return t
}()

// Index is an immutable FM-index. It is safe for concurrent queries.
type Index struct {
	bwt        []byte // BWT of the encoded text, one symbol code per byte
	c          [sigma + 1]int
	occ        []uint32 // occ[k*sigma+s] = count of s in bwt[:k*sampleRate]
	sampleRate int
}

var _ planner.Extender = (*Index)(nil)

// Build indexes the given source sequences. Characters outside {A,C,G,T} are
// treated as record breaks.
func Build(sources [][]byte, sampleRate int) (*Index, error) {
	if sampleRate < 1 || uint64(sampleRate) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, sampleRate)
	}
	text := encode(sources)
	if uint64(len(text)) > math.MaxUint32 {
		return nil, fmt.Errorf("source too large to index: %d symbols", len(text))
	}
	sa := suffixArray(text)
	bwt := make([]byte, len(text))
	for i, p := range sa {
		if p == 0 {
			bwt[i] = text[len(text)-1]
		} else {
			bwt[i] = text[p-1]
		}
	}
	return fromBWT(bwt, sampleRate), nil
}

// encode joins the sources into one symbol string ending in the sentinel.
func encode(sources [][]byte) []byte {
	size := 1
	for _, s := range sources {
		size += len(s) + 1
	}
	text := make([]byte, 0, size)
	for _, s := range sources {
		for _, ch := range s {
			code := codeOf[ch]
			if code == sigma {
				code = symSeparator
			}
			text = append(text, code)
		}
		text = append(text, symSeparator)
	}
	return append(text, symSentinel)
}

// fromBWT derives the C table and occurrence checkpoints from a BWT.
func fromBWT(bwt []byte, sampleRate int) *Index {
	idx := &Index{bwt: bwt, sampleRate: sampleRate}
	blocks := len(bwt)/sampleRate + 1
	idx.occ = make([]uint32, blocks*int(sigma))
	var running [sigma]uint32
	for i, s := range bwt {
		if i%sampleRate == 0 {
			copy(idx.occ[(i/sampleRate)*int(sigma):], running[:])
		}
		running[s]++
	}
	if len(bwt)%sampleRate == 0 {
		copy(idx.occ[(len(bwt)/sampleRate)*int(sigma):], running[:])
	}
	for s := byte(0); s < sigma; s++ {
		idx.c[s+1] = idx.c[s] + int(running[s])
	}
	return idx
}

// rank returns the number of occurrences of s in bwt[:i].
func (idx *Index) rank(s byte, i int) int {
	k := i / idx.sampleRate
	n := int(idx.occ[k*int(sigma)+int(s)])
	for _, b := range idx.bwt[k*idx.sampleRate : i] {
		if b == s {
			n++
		}
	}
	return n
}

// Len is the number of symbols in the indexed text, sentinel included.
func (idx *Index) Len() int {
	return len(idx.bwt)
}

// SampleRate is the spacing of occurrence checkpoints.
func (idx *Index) SampleRate() int {
	return idx.sampleRate
}

// NewSearch returns the interval of the empty pattern: every suffix.
func (idx *Index) NewSearch() planner.Interval {
	return planner.Interval{Lo: 0, Hi: len(idx.bwt)}
}

// Extend prepends c to the pattern of iv. Characters outside {A,C,G,T} never
// match.
func (idx *Index) Extend(iv planner.Interval, c byte) (planner.Interval, bool) {
	s := codeOf[c]
	if s == sigma || iv.Empty() {
		return planner.Interval{}, false
	}
	next := planner.Interval{
		Lo: idx.c[s] + idx.rank(s, iv.Lo),
		Hi: idx.c[s] + idx.rank(s, iv.Hi),
	}
	if next.Empty() {
		return planner.Interval{}, false
	}
	return next, true
}

// Count returns the number of occurrences of pattern in the source.
func (idx *Index) Count(pattern []byte) int {
	iv := idx.NewSearch()
	for i := len(pattern) - 1; i >= 0; i-- {
		var ok bool
		if iv, ok = idx.Extend(iv, pattern[i]); !ok {
			return 0
		}
	}
	return iv.Size()
}

// Exists reports whether pattern occurs at least once. The empty pattern
// always exists.
func (idx *Index) Exists(pattern []byte) bool {
	return len(pattern) == 0 || idx.Count(pattern) > 0
}
