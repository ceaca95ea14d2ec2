package strategy

import (
	"math/rand/v2"

	"github.com/Bogda165/rangedl/internal/interval"
	"github.com/Bogda165/rangedl/internal/store"
)

// Random picks a uniformly random free interval [p, q). When the gap is
// no longer than MinLen it requests the whole gap; otherwise it requests
// [p+MinLen, hi) with hi uniform in (p+MinLen, q], so the request starts
// MinLen bytes into the gap and may be as short as one byte. MinLen
// caps how often a tiny tail fragment gets re-requested; it does not
// depend on prior requests, so repeated server-side truncation still
// converges to completion.
type Random struct {
	MinLen uint64
}

// Select implements Strategy.
func (r Random) Select(s *store.FilledStore) (interval.Interval[uint64], bool, error) {
	total := s.Len()
	if total == 0 {
		return interval.Interval[uint64]{}, false, nil
	}

	bounds, err := interval.New[uint64](0, total)
	if err != nil {
		return interval.Interval[uint64]{}, false, err
	}

	free := s.Filled().Complement(bounds)
	if free.IsEmpty() {
		return interval.Interval[uint64]{}, false, nil
	}

	pick, err := free.At(rand.N(free.Len()))
	if err != nil {
		return interval.Interval[uint64]{}, false, err
	}

	lo := pick.Begin + r.MinLen
	if lo >= pick.End {
		return pick, true, nil
	}

	// hi uniformly in [lo+1, pick.End]
	span := pick.End - lo
	hi := lo + 1 + uint64(rand.N(int(span)))

	iv, err := interval.New(lo, hi)
	if err != nil {
		return interval.Interval[uint64]{}, false, err
	}
	return iv, true, nil
}
