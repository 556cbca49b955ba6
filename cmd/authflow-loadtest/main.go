// Command authflow-loadtest measures session lookups and end-to-end sign-ups
// against Redis, or an in-process miniredis when no address is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/authflow"
	"github.com/MrEthical07/authflow/identity"
	"github.com/MrEthical07/authflow/internal/logging"
	"github.com/MrEthical07/authflow/password"
	"github.com/MrEthical07/authflow/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type loadOptions struct {
	sessions    int
	concurrency int
	ops         int
	signups     int
	redisAddr   string
	prefix      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &loadOptions{}

	cmd := &cobra.Command{
		Use:          "authflow-loadtest",
		Short:        "Measure session lookups and sign-ups against Redis",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.sessions, "sessions", 100000, "number of sessions to seed")
	flags.IntVar(&opts.concurrency, "concurrency", 64, "number of concurrent workers")
	flags.IntVar(&opts.ops, "ops", 200000, "session lookups to perform")
	flags.IntVar(&opts.signups, "signups", 500, "end-to-end sign-ups to perform")
	flags.StringVar(&opts.redisAddr, "redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	flags.StringVar(&opts.prefix, "prefix", "lt", "redis key prefix")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *loadOptions) error {
	if opts.sessions <= 0 || opts.concurrency <= 0 || opts.ops <= 0 || opts.signups < 0 {
		return errors.New("sessions, concurrency, and ops must be > 0")
	}

	addr := opts.redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var client redis.UniversalClient
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start miniredis: %w", err)
		}
		defer mr.Close()
		addr = mr.Addr()
		fmt.Fprintf(out, "using miniredis at %s\n", addr)
	} else {
		fmt.Fprintf(out, "using redis at %s\n", addr)
	}
	client = redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{addr},
	})
	defer client.Close()

	store := session.NewStore(client, opts.prefix)

	sids := make([]string, opts.sessions)
	fmt.Fprintf(out, "seeding %d sessions...\n", opts.sessions)
	startSeed := time.Now()
	for i := range sids {
		sids[i] = "sid-" + strconv.Itoa(i)
		if err := store.Save(ctx, buildSession(sids[i], i), 24*time.Hour); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
	}
	fmt.Fprintf(out, "seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	getStats := runPhase(opts.ops, opts.concurrency, func(r *rand.Rand, _ int) error {
		_, err := store.Get(ctx, sids[r.Intn(len(sids))])
		return err
	})

	var signUpStats phaseStats
	if opts.signups > 0 {
		engine, provider, err := newSignUpEngine(client, opts.prefix)
		if err != nil {
			return err
		}
		defer provider.Close()
		defer engine.Close()

		signUpStats = runPhase(opts.signups, opts.concurrency, func(_ *rand.Rand, i int) error {
			outcome := engine.SignUp(ctx, "load"+strconv.Itoa(i)+"@example.com", "load-test-password")
			if !outcome.Succeeded() {
				return outcome.Err
			}
			return nil
		})
	}

	fmt.Fprintln(out, "---- results ----")
	printStats(out, "session get", getStats)
	if opts.signups > 0 {
		printStats(out, "sign-up", signUpStats)
	}
	return nil
}

// newSignUpEngine uses the cheapest accepted argon2 parameters so the phase
// measures the flow rather than the hash.
func newSignUpEngine(client redis.UniversalClient, prefix string) (*authflow.Engine, *identity.Provider, error) {
	cfg := identity.DefaultConfig([]byte("loadtest-signing-key"))
	cfg.Prefix = prefix
	cfg.Password = password.Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
	provider, err := identity.NewProvider(client, cfg, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	engineCfg := authflow.DefaultConfig()
	engineCfg.Account.EnableIdentifierThrottle = false
	engineCfg.Account.EnableIPThrottle = false
	engine, err := authflow.New().
		WithConfig(engineCfg).
		WithGateway(provider).
		WithRedis(client).
		WithLogger(logging.Discard()).
		Build()
	if err != nil {
		_ = provider.Close()
		return nil, nil, err
	}
	return engine, provider, nil
}

func runPhase(ops, concurrency int, op func(r *rand.Rand, i int) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r, i)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	return samples[(len(samples)-1)*p/100]
}

func printStats(w io.Writer, name string, s phaseStats) {
	fmt.Fprintf(w, "%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func buildSession(sid string, i int) *session.Session {
	now := time.Now()
	return &session.Session{
		SessionID: sid,
		UserID:    "u" + strconv.Itoa(i%1000),
		Email:     "user" + strconv.Itoa(i%1000) + "@example.com",
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(24 * time.Hour).Unix(),
	}
}
