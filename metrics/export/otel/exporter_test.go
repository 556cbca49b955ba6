package otel

import (
	"context"
	"sync"
	"testing"

	"github.com/MrEthical07/authflow"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot authflow.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() authflow.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := authflow.MetricsSnapshot{
		Counters:   make(map[authflow.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms: make(map[authflow.MetricID][]uint64, len(f.snapshot.Histograms)),
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		out.Histograms[k] = append([]uint64(nil), buckets...)
	}
	return out
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func newTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

// seriesName keys a data point by metric name plus its encoded attributes, e.g.
// authflow_sign_ups_total{outcome=created}.
func seriesName(name string, attrs attribute.Set) string {
	if attrs.Len() == 0 {
		return name
	}
	return name + "{" + attrs.Encoded(attribute.DefaultEncoder()) + "}"
}

func collectInt64(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					out[seriesName(m.Name, dp.Attributes)] = dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					out[seriesName(m.Name, dp.Attributes)] = dp.Value
				}
			}
		}
	}
	return out
}

func TestExporterRegistersAndCollects(t *testing.T) {
	reader, provider := newTestMeter()

	src := &fakeSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{
				authflow.MetricSignUpSuccess: 3,
			},
			Histograms: map[authflow.MetricID][]uint64{
				authflow.MetricCreateAccountLatency: {1, 1, 1, 1, 1, 1, 1, 1},
			},
		},
		dropped: 1,
	}

	exp, err := NewOTelExporterFromSource(provider.Meter("authflow-test"), src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	got := collectInt64(t, reader)
	checks := map[string]int64{
		"authflow_sign_ups_total{outcome=created}":                3,
		"authflow_sign_ups_total{outcome=rate_limited}":           0,
		"authflow_sign_ins_total{result=success}":                 0,
		"authflow_sign_outs_total":                                0,
		"authflow_audit_dropped_total":                            1,
		"authflow_create_account_latency_seconds_bucket_le_0_005": 1,
		"authflow_create_account_latency_seconds_bucket_le_inf":   8,
		"authflow_create_account_latency_seconds_count":           8,
	}
	for name, want := range checks {
		if v, ok := got[name]; !ok || v != want {
			t.Fatalf("%s: expected %d, got %d (present=%v)", name, want, v, ok)
		}
	}
}

func TestExporterFromEngine(t *testing.T) {
	reader, provider := newTestMeter()

	engine, err := authflow.New().
		WithGateway(nopGateway{}).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	exp, err := NewOTelExporter(provider.Meter("authflow-test"), engine)
	if err != nil {
		t.Fatalf("NewOTelExporter failed: %v", err)
	}
	defer exp.Close()

	ctx := context.Background()
	engine.SignOut(ctx, authflow.SessionState{})
	engine.SignUp(ctx, "user@example.com", "short")
	engine.EnterProtected(ctx)

	got := collectInt64(t, reader)
	checks := map[string]int64{
		"authflow_sign_outs_total":                             1,
		"authflow_sign_ups_total{outcome=weak_password}":       1,
		"authflow_protected_entries_total{session=redirected}": 1,
	}
	for name, want := range checks {
		if v := got[name]; v != want {
			t.Fatalf("%s: expected %d, got %d", name, want, v)
		}
	}
}

func TestExporterRejectsNilArguments(t *testing.T) {
	_, provider := newTestMeter()

	if _, err := NewOTelExporterFromSource(provider.Meter("authflow-test"), nil); err != ErrNilSource {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
	if _, err := NewOTelExporterFromSource(nil, &fakeSource{}); err != ErrNilMeter {
		t.Fatalf("expected ErrNilMeter, got %v", err)
	}
}

func TestExporterConcurrentCollectNoPanic(t *testing.T) {
	reader, provider := newTestMeter()

	src := &fakeSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{
				authflow.MetricSignUpSuccess: 1,
			},
			Histograms: map[authflow.MetricID][]uint64{
				authflow.MetricCreateAccountLatency: {1, 0, 0, 0, 0, 0, 0, 0},
			},
		},
	}

	exp, err := NewOTelExporterFromSource(provider.Meter("authflow-test"), src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			src.mu.Lock()
			src.snapshot.Counters[authflow.MetricSignUpSuccess] = v
			src.mu.Unlock()

			var rm metricdata.ResourceMetrics
			_ = reader.Collect(context.Background(), &rm)
		}(uint64(i + 1))
	}
	wg.Wait()
}

type nopGateway struct{}

func (nopGateway) CreateAccount(context.Context, authflow.Credentials) (authflow.SessionState, error) {
	return authflow.SessionState{}, nil
}
func (nopGateway) CurrentSession(context.Context) authflow.SessionState { return authflow.SessionState{} }
func (nopGateway) SignOutRemote(context.Context)                        {}
