package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MrEthical07/authflow"
	"github.com/MrEthical07/authflow/identity"
	"github.com/MrEthical07/authflow/internal/logging"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const devSigningKey = "authflow-development-signing-key"

type backend struct {
	engine   *authflow.Engine
	provider *identity.Provider
	logger   *slog.Logger
	cleanup  func()
}

func (b *backend) Close() {
	if b.cleanup != nil {
		b.cleanup()
	}
}

// openBackend wires Redis, the identity provider and the engine. Diagnostics go
// to stderr.
func openBackend(opts *options, stderr io.Writer) (*backend, error) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(stderr, logging.Options{
		Component: "authflow-cli",
		Format:    logging.ParseFormat(opts.logFormat),
		Level:     level,
	})

	addr := opts.redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		closers []func()
		client  redis.UniversalClient
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("start miniredis: %w", err)
		}
		closers = append(closers, mr.Close)
		addr = mr.Addr()
		logger.Info("using in-process miniredis; state is discarded on exit", "addr", addr)
	} else {
		logger.Debug("using redis", "addr", addr)
	}
	client = redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{addr},
	})
	closers = append(closers, func() { _ = client.Close() })

	key := opts.signingKey
	if key == "" {
		key = os.Getenv("AUTHFLOW_SIGNING_KEY")
	}
	if key == "" {
		key = devSigningKey
		logger.Debug("using development signing key")
	}

	cfg := identity.DefaultConfig([]byte(key))
	cfg.Prefix = opts.prefix

	var cache identity.TokenCache
	if opts.sessionFile != "" {
		cache = identity.NewFileCache(opts.sessionFile)
	}

	provider, err := identity.NewProvider(client, cfg, cache, logger.With("subsystem", "identity"))
	if err != nil {
		cleanup()
		return nil, err
	}
	closers = append(closers, func() { _ = provider.Close() })

	engineCfg := authflow.DefaultConfig()
	engineCfg.Metrics.Enabled = true
	engineCfg.Metrics.EnableLatencyHistograms = true
	engineCfg.Audit.Enabled = opts.audit

	builder := authflow.New().
		WithConfig(engineCfg).
		WithGateway(provider).
		WithRedis(client).
		WithLogger(logger)
	if opts.audit {
		builder = builder.WithAuditSink(authflow.NewJSONWriterSink(stderr))
	}

	engine, err := builder.Build()
	if err != nil {
		cleanup()
		return nil, err
	}
	closers = append(closers, engine.Close)

	return &backend{
		engine:   engine,
		provider: provider,
		logger:   logger,
		cleanup:  cleanup,
	}, nil
}
