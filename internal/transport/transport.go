// Package transport defines the opaque request/response channel the
// Controller drives: an interval goes in, a truncated byte reply comes
// back. Real wire framing lives in internal/httptransport; this package
// only describes the contract.
package transport

import (
	"context"
	"fmt"

	"github.com/Bogda165/rangedl/internal/interval"
)

// Reply is a single response to either a range request or the initial
// discovery request.
type Reply struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Transport is the external collaborator the Controller drives. It is a
// strict one-at-a-time request/response dialog: Submit must be followed
// by exactly one Poll before the next Submit.
type Transport interface {
	// Submit issues a range request for iv.
	Submit(ctx context.Context, iv interval.Interval[uint64]) error
	// Poll waits for the reply to the most recent Submit.
	Poll(ctx context.Context) (Reply, error)
	// Discover issues the initial bodyless metadata request.
	Discover(ctx context.Context) (Reply, error)
	// Close releases the transport's resources (sockets, worker
	// goroutines, queues).
	Close() error
}

// TimeoutError is returned by Poll/Discover when the configured deadline
// elapses before a reply arrives.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("transport: %s timed out", e.Op)
}

// ProtocolError reports a reply that violates the wire contract: a
// status other than 200/206, an empty body, or an unparseable
// Content-Length.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Reason)
}
