package fmindex

import (
	"cmp"
	"slices"
)

// suffixArray sorts the suffixes of text by prefix doubling. text must end in
// a unique smallest symbol.
func suffixArray(text []byte) []int {
	n := len(text)
	sa := make([]int, n)
	rank := make([]int, n)
	next := make([]int, n)
	for i := range sa {
		sa[i] = i
		rank[i] = int(text[i])
	}
	if n < 2 {
		return sa
	}

	for k := 1; ; k <<= 1 {
		second := func(i int) int {
			if i+k < n {
				return rank[i+k]
			}
			return -1
		}
		compare := func(a, b int) int {
			if c := cmp.Compare(rank[a], rank[b]); c != 0 {
				return c
			}
			return cmp.Compare(second(a), second(b))
		}
		slices.SortFunc(sa, compare)

		next[sa[0]] = 0
		for i := 1; i < n; i++ {
			next[sa[i]] = next[sa[i-1]]
			if compare(sa[i-1], sa[i]) < 0 {
				next[sa[i]]++
			}
		}
		copy(rank, next)
		if rank[sa[n-1]] == n-1 {
			return sa
		}
	}
}
