package httptransport

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/Bogda165/rangedl/internal/interval"
	"github.com/Bogda165/rangedl/internal/wire"
)

// fakeServer is a minimal single-connection-per-reply stand-in for the
// external HTTP/1.1 server this package's Transport talks to: it accepts
// one connection, decodes the request, writes a canned reply, and closes.
func fakeServer(t *testing.T, payload []byte) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()

				buf := make([]byte, 4096)
				n, err := c.Read(buf)
				if err != nil {
					return
				}
				req := string(buf[:n])

				if strings.Contains(req, forceTerminateHeader) {
					return
				}

				if strings.Contains(req, "Range:") {
					begin, end := 0, len(payload)
					fmt.Sscanf(req[strings.Index(req, "bytes="):], "bytes=%d-%d", &begin, &end)
					if begin >= len(payload) {
						begin = len(payload) - 1
					}
					if end >= len(payload) {
						end = len(payload) - 1
					}
					body := payload[begin : end+1]
					fmt.Fprintf(c, "HTTP/1.1 206 Partial Content\r\nContent-Length: %d\r\n\r\n", len(body))
					c.Write(body)
					return
				}

				fmt.Fprintf(c, "HTTP/1.1 200 OK\r\nContent-Length: %d\r\n\r\n", len(payload))
			}(conn)
		}
	}()

	return ln.Addr().String()
}

func TestTransportDiscoverAndRangeRoundTrip(t *testing.T) {
	payload := []byte("0123456789")
	addr := fakeServer(t, payload)

	tr := New(addr)
	defer tr.Close()

	ctx := context.Background()

	discoverReply, err := tr.Discover(ctx)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if discoverReply.Headers["Content-Length"] != "10" {
		t.Fatalf("Discover Content-Length = %q, want 10", discoverReply.Headers["Content-Length"])
	}

	iv, err := interval.New[uint64](2, 6)
	if err != nil {
		t.Fatalf("interval.New returned error: %v", err)
	}
	if err := tr.Submit(ctx, iv); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	reply, err := tr.Poll(ctx)
	if err != nil {
		t.Fatalf("Poll returned error: %v", err)
	}
	if reply.Status != 206 {
		t.Fatalf("Status = %d, want 206", reply.Status)
	}
	if string(reply.Body) != "2345" {
		t.Fatalf("Body = %q, want %q", reply.Body, "2345")
	}
}

func TestTransportPollTimesOutWithoutSubmit(t *testing.T) {
	addr := fakeServer(t, []byte("x"))
	tr := New(addr)
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := tr.Poll(ctx); err == nil {
		t.Fatal("expected a timeout error when polling with no pending submission")
	}
}

func TestNewRangeRequestWireFormat(t *testing.T) {
	req := wire.NewRangeRequest("host:1", 0, 4)
	if !strings.Contains(string(req.Encode()), "Range: bytes=0-3") {
		t.Fatalf("expected a Range header covering [0,4), got %q", req.Encode())
	}
}
