package interval

import (
	"cmp"
	"fmt"
)

// InvalidIntervalError is returned by New when begin >= end.
type InvalidIntervalError[T cmp.Ordered] struct {
	Begin, End T
}

func (e *InvalidIntervalError[T]) Error() string {
	return fmt.Sprintf("invalid interval: begin %v is not less than end %v", e.Begin, e.End)
}

// NotOverlappingError is returned by SubtypeOf when the two intervals do
// not overlap.
type NotOverlappingError[T cmp.Ordered] struct {
	A, B Interval[T]
}

func (e *NotOverlappingError[T]) Error() string {
	return fmt.Sprintf("interval %s does not overlap %s", e.A, e.B)
}

// NotAdjacentError is returned by Combine when the two intervals neither
// touch nor overlap.
type NotAdjacentError[T cmp.Ordered] struct {
	A, B Interval[T]
}

func (e *NotAdjacentError[T]) Error() string {
	return fmt.Sprintf("interval %s is not adjacent to %s", e.A, e.B)
}

// OverlappingError is returned by Combine when the two intervals overlap
// instead of merely touching.
type OverlappingError[T cmp.Ordered] struct {
	A, B Interval[T]
}

func (e *OverlappingError[T]) Error() string {
	return fmt.Sprintf("interval %s overlaps %s", e.A, e.B)
}
