// Package strategy selects the next byte range to request from a
// FilledStore's current state.
package strategy

import (
	"github.com/Bogda165/rangedl/internal/interval"
	"github.com/Bogda165/rangedl/internal/store"
)

// Strategy is a pure function from store state to the next requested
// interval. A false ok return means the download is complete.
type Strategy interface {
	Select(s *store.FilledStore) (iv interval.Interval[uint64], ok bool, err error)
}

// Sequential requests the single remaining gap at the front of the
// payload. Rather than assuming the filled list holds at most one
// interval, it computes the complement against [0, Len()) and requests
// the first gap, which is robust to any filled-list shape and
// degenerates to the simpler behavior when there is indeed at most one
// filled interval.
type Sequential struct{}

// Select implements Strategy.
func (Sequential) Select(s *store.FilledStore) (interval.Interval[uint64], bool, error) {
	total := s.Len()
	if total == 0 {
		return interval.Interval[uint64]{}, false, nil
	}

	bounds, err := interval.New[uint64](0, total)
	if err != nil {
		return interval.Interval[uint64]{}, false, err
	}

	gaps := s.Filled().Complement(bounds)
	if gaps.IsEmpty() {
		return interval.Interval[uint64]{}, false, nil
	}

	gap, err := gaps.At(0)
	if err != nil {
		return interval.Interval[uint64]{}, false, err
	}
	return gap, true, nil
}
