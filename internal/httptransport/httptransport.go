// Package httptransport implements transport.Transport over a real TCP
// connection speaking the minimal HTTP/1.1 subset in internal/wire. A
// single worker goroutine owns the socket and pumps submissions to
// replies over a pair of unidirectional channels, mirroring the
// Controller/Transport dialog in SPEC_FULL.md §5: the worker reopens a
// connection per request cycle because the server closes after every
// reply, so nothing here attempts to keep one alive.
package httptransport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bogda165/rangedl/internal/interval"
	"github.com/Bogda165/rangedl/internal/transport"
	"github.com/Bogda165/rangedl/internal/wire"
)

// forceTerminateHeader is the sentinel request header (§5, Cancellation)
// that tells a conforming server to tear down without a reply. The real
// transport never sends it on the happy path; Close uses it as a
// best-effort nudge to unstick a peer blocked mid-read.
const forceTerminateHeader = "X-Force-Terminate"

// Transport is the TCP-backed realization of transport.Transport.
type Transport struct {
	addr string
	log  *slog.Logger

	dialTimeout time.Duration

	submitCh chan submission
	replyCh  chan outcome

	ctx    context.Context
	cancel context.CancelFunc
	g      *errgroup.Group
}

type submission struct {
	discover  bool
	terminate bool
	iv        interval.Interval[uint64]
}

type outcome struct {
	reply transport.Reply
	err   error
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger attaches a logger; without it, slog.Default() is used.
func WithLogger(log *slog.Logger) Option {
	return func(t *Transport) { t.log = log }
}

// WithDialTimeout bounds how long a single TCP dial may take.
func WithDialTimeout(d time.Duration) Option {
	return func(t *Transport) { t.dialTimeout = d }
}

// New starts a Transport's background worker against addr (host:port).
func New(addr string, opts ...Option) *Transport {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Transport{
		addr:        addr,
		log:         slog.Default(),
		dialTimeout: 5 * time.Second,
		submitCh:    make(chan submission),
		replyCh:     make(chan outcome),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(t)
	}

	g, ctx := errgroup.WithContext(t.ctx)
	t.g = g
	g.Go(func() error { return t.run(ctx) })

	return t
}

func (t *Transport) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub := <-t.submitCh:
			reply, err := t.roundTrip(ctx, sub)
			select {
			case t.replyCh <- outcome{reply: reply, err: err}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (t *Transport) roundTrip(ctx context.Context, sub submission) (transport.Reply, error) {
	dialCtx, cancel := context.WithTimeout(ctx, t.dialTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", t.addr)
	if err != nil {
		return transport.Reply{}, fmt.Errorf("dial %s: %w", t.addr, err)
	}
	defer conn.Close()

	var req wire.Request
	switch {
	case sub.terminate:
		req = wire.NewDiscoverRequest(t.addr)
		req.Headers = append(req.Headers, wire.Header{Name: forceTerminateHeader, Value: "true"})
	case sub.discover:
		req = wire.NewDiscoverRequest(t.addr)
	default:
		req = wire.NewRangeRequest(t.addr, sub.iv.Begin, sub.iv.End)
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := conn.Write(req.Encode()); err != nil {
		return transport.Reply{}, fmt.Errorf("write request: %w", err)
	}

	if sub.terminate {
		// The sentinel tears the peer down; it never replies, so there is
		// nothing to decode and nothing worth waiting on.
		return transport.Reply{}, nil
	}

	resp, err := wire.Decode(conn)
	if err != nil {
		return transport.Reply{}, fmt.Errorf("decode response: %w", err)
	}

	t.log.Debug("httptransport: round trip complete",
		"discover", sub.discover, "status", resp.Status, "body_len", len(resp.Body))

	return transport.Reply{
		Status:  resp.Status,
		Headers: resp.Headers,
		Body:    resp.Body,
	}, nil
}

// Submit implements transport.Transport.
func (t *Transport) Submit(ctx context.Context, iv interval.Interval[uint64]) error {
	select {
	case t.submitCh <- submission{iv: iv}:
		return nil
	case <-ctx.Done():
		return &transport.TimeoutError{Op: "submit"}
	case <-t.ctx.Done():
		return fmt.Errorf("httptransport: closed")
	}
}

// Discover implements transport.Transport.
func (t *Transport) Discover(ctx context.Context) (transport.Reply, error) {
	select {
	case t.submitCh <- submission{discover: true}:
	case <-ctx.Done():
		return transport.Reply{}, &transport.TimeoutError{Op: "discover"}
	case <-t.ctx.Done():
		return transport.Reply{}, fmt.Errorf("httptransport: closed")
	}
	return t.Poll(ctx)
}

// Poll implements transport.Transport.
func (t *Transport) Poll(ctx context.Context) (transport.Reply, error) {
	select {
	case out := <-t.replyCh:
		return out.reply, out.err
	case <-ctx.Done():
		return transport.Reply{}, &transport.TimeoutError{Op: "poll"}
	case <-t.ctx.Done():
		return transport.Reply{}, fmt.Errorf("httptransport: closed")
	}
}

// Close tears down the worker goroutine and waits for it to exit. It
// first makes a best-effort attempt to send the X-Force-Terminate
// sentinel (§5, Cancellation) so a conforming peer tears down its side
// too; the attempt is abandoned immediately if the worker is busy or
// already gone.
func (t *Transport) Close() error {
	select {
	case t.submitCh <- submission{terminate: true}:
		select {
		case <-t.replyCh:
		case <-time.After(t.dialTimeout):
		}
	default:
	}

	t.cancel()
	if err := t.g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
