package authflow

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a counter or histogram in the in-process metrics system.
type MetricID uint16

const (
	// MetricSignUpSuccess counts accounts created.
	MetricSignUpSuccess MetricID = iota
	// MetricSignUpEmptyField counts submissions rejected for an empty field.
	MetricSignUpEmptyField
	// MetricSignUpInvalidEmail counts submissions rejected for the email format.
	MetricSignUpInvalidEmail
	// MetricSignUpWeakPassword counts submissions rejected for password length.
	MetricSignUpWeakPassword
	// MetricSignUpProviderFailure counts provider-side sign-up failures.
	MetricSignUpProviderFailure
	// MetricSignUpRateLimited counts submissions refused by the sign-up limiter.
	MetricSignUpRateLimited
	// MetricSignInSuccess counts successful sign-ins.
	MetricSignInSuccess
	// MetricSignInFailure counts rejected or failed sign-ins.
	MetricSignInFailure
	// MetricSessionRedirect counts protected-screen entries sent to authentication.
	MetricSessionRedirect
	// MetricSessionResumed counts protected-screen entries with a live session.
	MetricSessionResumed
	// MetricSignOut counts sign-outs.
	MetricSignOut
	// MetricProfileSmokeWriteFailure counts failed profile connectivity writes.
	MetricProfileSmokeWriteFailure
	// MetricCreateAccountLatency is the provider create-account latency histogram.
	MetricCreateAccountLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds atomic counters and optional latency histograms.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] instance. When cfg.Enabled is false every
// operation is a no-op.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether latency histograms are recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to the counter id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d in the histogram id. Only histogram metrics accept samples.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricCreateAccountLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current value of counter id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and, when enabled, the latency histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricCreateAccountLatency {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricCreateAccountLatency].buckets[i])
		}
		s.Histograms[MetricCreateAccountLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
