package interval

import "cmp"

// List is an ordered, slice-backed sequence of non-overlapping,
// non-touching half-open intervals. Insert keeps it coalesced; a vector
// is used in place of the owned-linked-list representation because
// insertion here is a single linear pass and a slice gives much better
// iteration locality for the Controller's hot loop.
type List[T cmp.Ordered] struct {
	items []Interval[T]
}

// NewList returns an empty interval list.
func NewList[T cmp.Ordered]() *List[T] {
	return &List[T]{}
}

// FromIntervals folds Insert over the given intervals in order.
func FromIntervals[T cmp.Ordered](ivs []Interval[T]) (*List[T], error) {
	l := NewList[T]()
	for _, iv := range ivs {
		if err := l.Insert(iv); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// IsEmpty reports whether the list holds no intervals.
func (l *List[T]) IsEmpty() bool {
	return len(l.items) == 0
}

// Len returns the number of disjoint intervals in the list.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Clear empties the list.
func (l *List[T]) Clear() {
	l.items = nil
}

// At returns the i'th interval in ascending order.
func (l *List[T]) At(i int) (Interval[T], error) {
	if i < 0 || i >= len(l.items) {
		return Interval[T]{}, &IndexOutOfRangeError{Index: i, Len: len(l.items)}
	}
	return l.items[i], nil
}

// All returns a copy of the intervals in ascending order; mutating the
// returned slice does not affect the list.
func (l *List[T]) All() []Interval[T] {
	out := make([]Interval[T], len(l.items))
	copy(out, l.items)
	return out
}

// Contains reports whether x is covered by any interval in the list.
func (l *List[T]) Contains(x T) bool {
	for _, c := range l.items {
		if x < c.Begin {
			return false
		}
		if c.Contains(x) {
			return true
		}
	}
	return false
}

// TotalRange returns the begin of the first interval and the end of the
// last, or ok=false if the list is empty.
func (l *List[T]) TotalRange() (begin, end T, ok bool) {
	if len(l.items) == 0 {
		return begin, end, false
	}
	return l.items[0].Begin, l.items[len(l.items)-1].End, true
}

// Insert merges iv into the list, coalescing with touching neighbors and
// resolving overlaps, preserving sort order and the no-touching
// invariant. See SPEC_FULL.md §4.2.1 for the algorithm this follows.
func (l *List[T]) Insert(iv Interval[T]) error {
	for i, c := range l.items {
		switch Relate(c, iv) {
		case Disjoint:
			if iv.End <= c.Begin {
				l.items = append(l.items, Interval[T]{})
				copy(l.items[i+1:], l.items[i:])
				l.items[i] = iv
				return nil
			}
			// iv.Begin >= c.End: keep scanning.
			continue

		case Touches:
			merged, err := Combine(c, iv)
			if err != nil {
				return err
			}
			l.absorbFrom(i, merged)
			return nil

		case Overlaps:
			subtype, err := SubtypeOf(c, iv)
			if err != nil {
				return err
			}
			merged := c
			switch subtype {
			case Left:
				merged.Begin = iv.Begin
			case Right:
				merged.End = iv.End
			case Inside:
				merged = iv
			case Contained:
				// no growth
			}
			l.absorbFrom(i, merged)
			return nil
		}
	}

	l.items = append(l.items, iv)
	return nil
}

// absorbFrom replaces the interval at index i with merged, then cascades
// forward absorbing any successor merged now reaches or overlaps.
func (l *List[T]) absorbFrom(i int, merged Interval[T]) {
	j := i + 1
	for j < len(l.items) && merged.End >= l.items[j].Begin {
		if l.items[j].End > merged.End {
			merged.End = l.items[j].End
		}
		j++
	}
	l.items[i] = merged
	l.items = append(l.items[:i+1], l.items[j:]...)
}

// Complement returns the maximal sub-intervals of bounds not covered by
// any interval in the list, in order.
func (l *List[T]) Complement(bounds Interval[T]) *List[T] {
	out := NewList[T]()
	cursor := bounds.Begin

	for _, c := range l.items {
		if c.Begin > bounds.End {
			break
		}
		if cursor < c.Begin {
			out.items = append(out.items, Interval[T]{Begin: cursor, End: c.Begin})
		}
		end := c.End
		if end > bounds.End {
			end = bounds.End
		}
		if end > cursor {
			cursor = end
		}
	}

	if cursor < bounds.End {
		out.items = append(out.items, Interval[T]{Begin: cursor, End: bounds.End})
	}

	return out
}

// IndexOutOfRangeError is returned by At for an index outside [0, Len()).
type IndexOutOfRangeError struct {
	Index, Len int
}

func (e *IndexOutOfRangeError) Error() string {
	return "interval list index out of range"
}
