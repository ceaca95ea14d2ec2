// Package store holds the payload buffer being assembled and the
// interval list tracking which byte ranges have already been filled.
package store

import (
	"fmt"

	"github.com/Bogda165/rangedl/internal/interval"
)

// FilledStore is a fixed-length byte buffer paired with the set of byte
// ranges that have been written into it so far.
type FilledStore struct {
	data   []byte
	filled *interval.List[uint64]
}

// New allocates a zeroed buffer of length n and an empty filled list.
func New(n uint64) *FilledStore {
	return &FilledStore{
		data:   make([]byte, n),
		filled: interval.NewList[uint64](),
	}
}

// Len returns the total length of the payload being assembled.
func (s *FilledStore) Len() uint64 {
	return uint64(len(s.data))
}

// Filled returns the interval list of byte ranges already written. The
// returned list is a read-only view; callers must not mutate it.
func (s *FilledStore) Filled() *interval.List[uint64] {
	return s.filled
}

// Ready reports whether the store holds the complete payload, i.e. the
// filled list reduces to exactly [0, Len()).
func (s *FilledStore) Ready() bool {
	if s.filled.Len() != 1 {
		return false
	}
	begin, end, ok := s.filled.TotalRange()
	return ok && begin == 0 && end == s.Len()
}

// Integrate copies fragment into data[begin:begin+len(fragment)] and
// records the range as filled. It fails if the target range would
// overlap bytes already filled (touching is fine) or if it runs past
// the end of the buffer.
func (s *FilledStore) Integrate(fragment []byte, begin uint64) error {
	if len(fragment) == 0 {
		return fmt.Errorf("integrate: empty fragment")
	}
	end := begin + uint64(len(fragment))
	if end > s.Len() {
		return fmt.Errorf("integrate: range [%d,%d) exceeds store length %d", begin, end, s.Len())
	}

	iv, err := interval.New(begin, end)
	if err != nil {
		return err
	}

	for _, c := range s.filled.All() {
		if interval.Relate(c, iv) == interval.Overlaps {
			return &AlreadyFilledError{Requested: iv, Existing: c}
		}
	}

	copy(s.data[begin:end], fragment)
	return s.filled.Insert(iv)
}

// Snapshot returns the current buffer without transferring ownership;
// bytes outside Filled() are unspecified placeholders.
func (s *FilledStore) Snapshot() []byte {
	return s.data
}

// Take consumes the store and returns its buffer. The store must not be
// used afterwards.
func (s *FilledStore) Take() []byte {
	data := s.data
	s.data = nil
	return data
}

// AlreadyFilledError is returned by Integrate when the requested range
// overlaps bytes the store already holds. Under a correct strategy the
// Controller never triggers this; seeing it means the strategy asked for
// bytes it already had, a programming error.
type AlreadyFilledError struct {
	Requested, Existing interval.Interval[uint64]
}

func (e *AlreadyFilledError) Error() string {
	return fmt.Sprintf("already filled: requested %s overlaps existing %s", e.Requested, e.Existing)
}
