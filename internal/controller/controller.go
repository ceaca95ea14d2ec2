// Package controller drives the pull/push request loop: it asks a
// Strategy for the next range, submits it to a Transport, integrates
// whatever fragment comes back into a FilledStore, and verifies the
// assembled payload once complete.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Bogda165/rangedl/internal/interval"
	"github.com/Bogda165/rangedl/internal/store"
	"github.com/Bogda165/rangedl/internal/strategy"
	"github.com/Bogda165/rangedl/internal/transport"
	"github.com/Bogda165/rangedl/internal/verify"
	"github.com/Bogda165/rangedl/internal/wire"
)

// State is one step of the Controller's state machine (§4.5).
type State int

const (
	Discovering State = iota
	Requesting
	AwaitingReply
	Integrating
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Discovering:
		return "Discovering"
	case Requesting:
		return "Requesting"
	case AwaitingReply:
		return "AwaitingReply"
	case Integrating:
		return "Integrating"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Default timeouts per §5: 5s per reply, 10s for discovery.
const (
	DefaultPollTimeout     = 5 * time.Second
	DefaultDiscoverTimeout = 10 * time.Second
)

// Metrics receives observations from a Controller run. Implementations
// need not be safe for concurrent use: the Controller calls them one at
// a time from the goroutine running Run.
type Metrics interface {
	RequestSubmitted()
	BytesIntegrated(n int)
	CycleObserved(d time.Duration)
	DigestResult(ok bool)
}

// noopMetrics discards every observation.
type noopMetrics struct{}

func (noopMetrics) RequestSubmitted()           {}
func (noopMetrics) BytesIntegrated(int)         {}
func (noopMetrics) CycleObserved(time.Duration) {}
func (noopMetrics) DigestResult(bool)           {}

// Controller runs the download loop to completion.
type Controller struct {
	transport transport.Transport
	strategy  strategy.Strategy
	log       *slog.Logger
	metrics   Metrics

	pollTimeout     time.Duration
	discoverTimeout time.Duration

	state            State
	lastRequestBegin uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger; the zero value uses slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithMetrics attaches a Metrics sink; the zero value discards metrics.
func WithMetrics(m Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithPollTimeout overrides the per-reply timeout.
func WithPollTimeout(d time.Duration) Option {
	return func(c *Controller) { c.pollTimeout = d }
}

// WithDiscoverTimeout overrides the discovery timeout.
func WithDiscoverTimeout(d time.Duration) Option {
	return func(c *Controller) { c.discoverTimeout = d }
}

// New builds a Controller over the given transport and strategy.
func New(t transport.Transport, s strategy.Strategy, opts ...Option) *Controller {
	c := &Controller{
		transport:       t,
		strategy:        s,
		log:             slog.Default(),
		metrics:         noopMetrics{},
		pollTimeout:     DefaultPollTimeout,
		discoverTimeout: DefaultDiscoverTimeout,
		state:           Discovering,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the Controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Run executes the discovery handshake followed by the request loop
// until the payload is complete, then verifies it against expectedHex.
// It returns the assembled payload on success.
func (c *Controller) Run(ctx context.Context, expectedHex string) ([]byte, error) {
	n, err := c.discover(ctx)
	if err != nil {
		c.state = Failed
		return nil, err
	}

	s := store.New(n)

	data, err := c.loop(ctx, s)
	if err != nil {
		c.state = Failed
		return nil, err
	}

	c.state = Done

	if err := verify.Verify(data, expectedHex); err != nil {
		c.metrics.DigestResult(false)
		return nil, err
	}
	c.metrics.DigestResult(true)

	return data, nil
}

// discover issues the bodyless metadata request and extracts the
// payload length from Content-Length.
func (c *Controller) discover(ctx context.Context) (uint64, error) {
	c.state = Discovering

	dctx, cancel := context.WithTimeout(ctx, c.discoverTimeout)
	defer cancel()

	reply, err := c.transport.Discover(dctx)
	if err != nil {
		return 0, fmt.Errorf("discover: %w", err)
	}

	cl, ok := reply.Headers["Content-Length"]
	if !ok {
		return 0, &transport.ProtocolError{Reason: "discovery reply missing Content-Length"}
	}
	n, err := wire.ParseContentLength(cl)
	if err != nil {
		return 0, &transport.ProtocolError{Reason: err.Error()}
	}

	c.log.Info("controller: discovered payload length", "length", n)
	return n, nil
}

// loop drives Strategy → Transport → FilledStore until the store is
// ready, per §4.5.
func (c *Controller) loop(ctx context.Context, s *store.FilledStore) ([]byte, error) {
	for {
		c.state = Requesting
		selected, ok, err := c.strategy.Select(s)
		if err != nil {
			return nil, fmt.Errorf("strategy select: %w", err)
		}
		if !ok {
			// Complete is a control signal, not an error: fold it into
			// the Done transition.
			return s.Take(), nil
		}

		start := time.Now()

		if err := c.transport.Submit(ctx, selected); err != nil {
			return nil, fmt.Errorf("submit %s: %w", selected, err)
		}
		c.metrics.RequestSubmitted()
		c.lastRequestBegin = selected.Begin

		c.state = AwaitingReply
		rctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
		reply, err := c.transport.Poll(rctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("poll %s: %w", selected, err)
		}

		if err := validateReply(reply, selected); err != nil {
			return nil, err
		}

		c.state = Integrating
		k := uint64(len(reply.Body))
		if err := s.Integrate(reply.Body, c.lastRequestBegin); err != nil {
			return nil, fmt.Errorf("integrate [%d,%d): %w", c.lastRequestBegin, c.lastRequestBegin+k, err)
		}
		c.metrics.BytesIntegrated(len(reply.Body))
		c.metrics.CycleObserved(time.Since(start))

		if s.Ready() {
			return s.Take(), nil
		}
	}
}

// validateReply checks the reply status and body length against §4.5
// step 4: status must be 200/206, and 1 <= k <= len(selected).
func validateReply(reply transport.Reply, selected interval.Interval[uint64]) error {
	if reply.Status != 200 && reply.Status != 206 {
		return &transport.ProtocolError{Reason: fmt.Sprintf("unexpected status %d", reply.Status)}
	}
	k := uint64(len(reply.Body))
	want := selected.End - selected.Begin
	if k < 1 || k > want {
		return &transport.ProtocolError{Reason: fmt.Sprintf("body length %d out of range [1,%d]", k, want)}
	}
	return nil
}
