package planner

// Oracle answers exact substring membership against a source genome.
// Implementations must be safe for concurrent reads once constructed.
type Oracle interface {
	// Exists reports whether pattern occurs at least once in the source.
	Exists(pattern []byte) bool
}

// Interval is a half-open match range [Lo, Hi) over an index's internal
// ordering. It is empty when Lo >= Hi.
type Interval struct {
	Lo, Hi int
}

// Empty reports whether no source position is consistent with the interval.
func (iv Interval) Empty() bool {
	return iv.Lo >= iv.Hi
}

// Size is the number of occurrences the interval represents.
func (iv Interval) Size() int {
	if iv.Empty() {
		return 0
	}
	return iv.Hi - iv.Lo
}

// Extender is an Oracle that supports incremental backward extension:
// starting from the empty pattern, characters are prepended one at a time.
//
// Once Extend reports an empty interval, every further extension is empty too,
// so callers stop extending for that sweep.
type Extender interface {
	Oracle
	// NewSearch returns the interval matching the empty pattern.
	NewSearch() Interval
	// Extend prepends c to the pattern represented by iv.
	Extend(iv Interval, c byte) (Interval, bool)
}

// Union combines several source oracles: a pattern is reusable when any of
// them contains it. Each member is queried independently, so a Union never
// takes the incremental path in the DP planner unless it has a single
// Extender member.
type Union []Oracle

// Exists reports whether any member contains pattern.
func (u Union) Exists(pattern []byte) bool {
	for _, o := range u {
		if o.Exists(pattern) {
			return true
		}
	}
	return false
}

// single returns the only Extender behind o, if there is one. Nested unions of
// one member are unwrapped.
func single(o Oracle) (Extender, bool) {
	for {
		u, ok := o.(Union)
		if !ok || len(u) != 1 {
			break
		}
		o = u[0]
	}
	if _, isUnion := o.(Union); isUnion {
		return nil, false
	}
	ext, ok := o.(Extender)
	return ext, ok
}
