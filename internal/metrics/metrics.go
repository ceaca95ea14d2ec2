// Package metrics wires the Controller's observations up to Prometheus,
// the same shape cmd/rrr-server uses for its watcher/aggregation
// counters: a handful of collectors on a custom registry, registered by
// the CLI and served through go.ntppool.org/common/metricsserver.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors holds the Prometheus metrics the Controller reports to.
// It implements controller.Metrics without importing that package,
// avoiding an import cycle between metrics and controller.
type Collectors struct {
	requestsSubmitted prometheus.Counter
	bytesIntegrated   prometheus.Counter
	cycleDuration     prometheus.Histogram
	digestResults     *prometheus.CounterVec
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		requestsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rangedl_requests_submitted_total",
			Help: "Total number of range requests submitted to the transport.",
		}),
		bytesIntegrated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rangedl_bytes_integrated_total",
			Help: "Total number of payload bytes integrated into the filled store.",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rangedl_cycle_duration_seconds",
			Help:    "Time from request submission to fragment integration.",
			Buckets: prometheus.DefBuckets,
		}),
		digestResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rangedl_digest_result_total",
			Help: "Final digest verification outcome.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.requestsSubmitted,
		c.bytesIntegrated,
		c.cycleDuration,
		c.digestResults,
	)

	return c
}

// RequestSubmitted implements controller.Metrics.
func (c *Collectors) RequestSubmitted() {
	c.requestsSubmitted.Inc()
}

// BytesIntegrated implements controller.Metrics.
func (c *Collectors) BytesIntegrated(n int) {
	c.bytesIntegrated.Add(float64(n))
}

// CycleObserved implements controller.Metrics.
func (c *Collectors) CycleObserved(d time.Duration) {
	c.cycleDuration.Observe(d.Seconds())
}

// DigestResult implements controller.Metrics.
func (c *Collectors) DigestResult(ok bool) {
	result := "mismatch"
	if ok {
		result = "match"
	}
	c.digestResults.WithLabelValues(result).Inc()
}
