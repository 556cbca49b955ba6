package authflow

import (
	"context"
	"log/slog"

	internalaudit "github.com/MrEthical07/authflow/internal/audit"
	"github.com/MrEthical07/authflow/internal/limiters"
	"github.com/MrEthical07/authflow/kv"
)

// Engine runs the sign-up, sign-in, session and profile flows against an injected
// [AuthGateway].
//
// Engines are built by [Builder.Build] and are safe for concurrent use.
type Engine struct {
	config  Config
	gateway AuthGateway
	policy  SessionPolicy
	limiter *limiters.SignUpLimiter
	kv      kv.Writer
	audit   *internalaudit.Dispatcher
	metrics *Metrics
	logger  *slog.Logger
}

// Close flushes pending audit events and stops the dispatcher. It is safe to call
// more than once.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped returns the number of audit events dropped because the buffer was
// full or the emitting context ended.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a copy of the engine's counters and histograms.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Policy returns the session policy the engine applies.
func (e *Engine) Policy() SessionPolicy {
	if e == nil {
		return SessionPolicy{}
	}
	return e.policy
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	if e == nil {
		return defaultConfig()
	}
	return e.config
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) ready() bool {
	return e != nil && e.gateway != nil
}

// CurrentSession returns the gateway's current session snapshot, or the signed-out
// state when the engine is not ready.
func (e *Engine) CurrentSession(ctx context.Context) SessionState {
	if !e.ready() {
		return SessionState{}
	}
	return e.gateway.CurrentSession(ctx)
}
