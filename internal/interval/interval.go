// Package interval implements half-open byte ranges and the coalescing
// list that tracks which ranges of a payload have already been filled.
package interval

import (
	"cmp"
	"fmt"
)

// Relation is the total, three-way classification of how two intervals
// relate to each other.
type Relation int

const (
	// Disjoint means the intervals neither overlap nor touch.
	Disjoint Relation = iota
	// Touches means the intervals are exactly adjacent (A.End == B.Begin
	// or B.End == A.Begin) and can be merged without loss.
	Touches
	// Overlaps means the open interiors of the intervals intersect.
	Overlaps
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "Disjoint"
	case Touches:
		return "Touches"
	case Overlaps:
		return "Overlaps"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Subtype classifies an Overlaps relation from the perspective of "B
// applied onto A": how B grows (or fails to grow) A.
type Subtype int

const (
	// Left means B extends A leftward (B.Begin < A.Begin, B.End <= A.End).
	Left Subtype = iota
	// Right means B extends A rightward (B.Begin >= A.Begin, B.End > A.End).
	Right
	// Inside means B strictly contains A; A is fully replaced by B.
	Inside
	// Contained means A contains B (B.Begin >= A.Begin, B.End <= A.End,
	// including B == A); absorbing B grows nothing.
	// This splits out the ambiguous "B fully inside A" case that the
	// original implementation folds into Right.
	Contained
)

func (s Subtype) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Inside:
		return "Inside"
	case Contained:
		return "Contained"
	default:
		return fmt.Sprintf("Subtype(%d)", int(s))
	}
}

// Interval is a half-open range [Begin, End) over an ordered key type.
type Interval[T cmp.Ordered] struct {
	Begin T
	End   T
}

// New builds an Interval, rejecting empty or inverted ranges.
func New[T cmp.Ordered](begin, end T) (Interval[T], error) {
	if begin >= end {
		return Interval[T]{}, &InvalidIntervalError[T]{Begin: begin, End: end}
	}
	return Interval[T]{Begin: begin, End: end}, nil
}

// Contains reports whether x falls within the half-open range.
func (iv Interval[T]) Contains(x T) bool {
	return iv.Begin <= x && x < iv.End
}

// String renders the interval in half-open bracket notation, e.g. "[3,7)".
func (iv Interval[T]) String() string {
	return fmt.Sprintf("[%v,%v)", iv.Begin, iv.End)
}

// Relate classifies how b relates to a. The relation is symmetric;
// Touches separates the safe-merge adjacency case from Overlaps.
func Relate[T cmp.Ordered](a, b Interval[T]) Relation {
	if a.Begin < b.End && b.Begin < a.End {
		return Overlaps
	}
	if a.End == b.Begin || b.End == a.Begin {
		return Touches
	}
	return Disjoint
}

// SubtypeOf classifies an Overlaps relation between a and b, "b applied
// onto a". It requires Relate(a, b) == Overlaps.
func SubtypeOf[T cmp.Ordered](a, b Interval[T]) (Subtype, error) {
	if Relate(a, b) != Overlaps {
		return 0, &NotOverlappingError[T]{A: a, B: b}
	}
	switch {
	case b.Begin < a.Begin && b.End > a.End:
		return Inside, nil
	case b.Begin < a.Begin:
		return Left, nil
	case b.End > a.End:
		return Right, nil
	default:
		return Contained, nil
	}
}

// Combine merges two touching intervals into their union. It requires
// Relate(a, b) == Touches.
func Combine[T cmp.Ordered](a, b Interval[T]) (Interval[T], error) {
	switch Relate(a, b) {
	case Touches:
		begin := a.Begin
		if b.Begin < begin {
			begin = b.Begin
		}
		end := a.End
		if b.End > end {
			end = b.End
		}
		return Interval[T]{Begin: begin, End: end}, nil
	case Overlaps:
		return Interval[T]{}, &OverlappingError[T]{A: a, B: b}
	default:
		return Interval[T]{}, &NotAdjacentError[T]{A: a, B: b}
	}
}
