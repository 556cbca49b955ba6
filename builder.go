package authflow

import (
	"errors"
	"log/slog"

	internalaudit "github.com/MrEthical07/authflow/internal/audit"
	"github.com/MrEthical07/authflow/internal/limiters"
	"github.com/MrEthical07/authflow/internal/logging"
	"github.com/MrEthical07/authflow/kv"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an [Engine] from a [Config] and its collaborators.
//
// A Builder can be built once. Collaborators are injected here; the engine never
// looks them up globally.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	gateway   AuthGateway
	kvWriter  kv.Writer
	auditSink AuditSink
	logger    *slog.Logger

	built bool
}

// New returns a Builder holding [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithGateway sets the identity provider. It is required.
func (b *Builder) WithGateway(gw AuthGateway) *Builder {
	b.gateway = gw
	return b
}

// WithRedis enables sign-up throttling and, unless [Builder.WithKVWriter] is
// used, backs the profile smoke write.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithKVWriter sets the writer used by the profile smoke write.
func (b *Builder) WithKVWriter(w kv.Writer) *Builder {
	b.kvWriter = w
	return b
}

// WithAuditSink sets the destination for audit events. Events are only
// dispatched when Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the engine logger. Without one, Build creates a stderr logger
// from Config.Logging.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// WithMetricsEnabled toggles in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the create-account latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.gateway == nil {
		return nil, errors.New("auth gateway required")
	}

	logger := b.logger
	if logger == nil {
		logger = logging.New(nil, logging.Options{
			Component: "authflow",
			Format:    cfg.Logging.Format,
			Level:     cfg.Logging.Level,
		})
	}

	engine := &Engine{
		config:  cfg,
		gateway: b.gateway,
		policy:  SessionPolicy{NotSignedInLabel: cfg.Session.NotSignedInLabel},
		logger:  logger,
		metrics: NewMetrics(cfg.Metrics),
	}

	if cfg.Account.Enabled {
		engine.limiter = limiters.NewSignUpLimiter(b.redis, limiters.SignUpConfig{
			EnableIdentifierThrottle: cfg.Account.EnableIdentifierThrottle,
			EnableIPThrottle:         cfg.Account.EnableIPThrottle,
			MaxAttempts:              cfg.Account.MaxAttempts,
			Cooldown:                 cfg.Account.Cooldown,
		})
	}

	engine.kv = b.kvWriter
	if engine.kv == nil && b.redis != nil {
		engine.kv = kv.NewRedisWriter(b.redis, "")
	}

	engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	b.built = true

	return engine, nil
}
