// Package simulator is an in-process Transport test double standing in
// for the real server: it holds a fixed payload and truncates every
// reply to a random non-empty prefix of what was asked for, exercising
// the Controller's truncation-robustness property without a socket.
// Per SPEC_FULL.md §1 this is not part of the core; it exists purely for
// tests.
package simulator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Bogda165/rangedl/internal/interval"
	"github.com/Bogda165/rangedl/internal/transport"
)

// Server is a conforming transport.Transport backed by an in-memory
// payload.
type Server struct {
	data []byte

	// MaxChunk caps how many bytes a single reply ever returns, in
	// addition to the requested range and the per-call random
	// truncation. Zero means unlimited.
	MaxChunk int

	records []record
}

type record struct {
	body  []byte
	begin uint64
}

// New returns a Server serving the given payload.
func New(data []byte) *Server {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Server{data: cp}
}

// Data returns the payload the simulator serves, for test assertions.
func (s *Server) Data() []byte {
	return s.data
}

// Submit implements transport.Transport: it queues a truncated fragment
// of the requested range for the next Poll.
func (s *Server) Submit(_ context.Context, iv interval.Interval[uint64]) error {
	if iv.End > uint64(len(s.data)) {
		return fmt.Errorf("simulator: requested range %s exceeds payload length %d", iv, len(s.data))
	}

	full := iv.End - iv.Begin
	n := uint64(1 + rand.N(int(full)))
	if s.MaxChunk > 0 && n > uint64(s.MaxChunk) {
		n = uint64(s.MaxChunk)
	}

	s.records = append(s.records, record{
		body:  s.data[iv.Begin : iv.Begin+n],
		begin: iv.Begin,
	})
	return nil
}

// Poll implements transport.Transport.
func (s *Server) Poll(_ context.Context) (transport.Reply, error) {
	if len(s.records) == 0 {
		return transport.Reply{}, fmt.Errorf("simulator: poll with no pending submission")
	}
	rec := s.records[len(s.records)-1]
	s.records = s.records[:len(s.records)-1]

	status := 206
	if rec.begin == 0 && len(rec.body) == len(s.data) {
		status = 200
	}

	return transport.Reply{
		Status: status,
		Headers: map[string]string{
			"Content-Length": fmt.Sprint(len(rec.body)),
		},
		Body: rec.body,
	}, nil
}

// Discover implements transport.Transport: it reports the payload
// length via Content-Length, with no body.
func (s *Server) Discover(_ context.Context) (transport.Reply, error) {
	return transport.Reply{
		Status: 200,
		Headers: map[string]string{
			"Content-Length": fmt.Sprint(len(s.data)),
		},
	}, nil
}

// Close implements transport.Transport; the simulator holds no
// resources to release.
func (s *Server) Close() error {
	return nil
}
