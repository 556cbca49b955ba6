package authflow

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds engine settings.
//
// Config instances are intended to be configured during initialization and then
// treated as immutable. [Builder.Build] takes a copy.
type Config struct {
	Account AccountConfig
	Session SessionConfig
	Profile ProfileConfig
	Audit   AuditConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

/*
====================================
ACCOUNT CONFIG
====================================
*/

// AccountConfig controls sign-up.
//
// Throttling only applies when a Redis client is supplied to the builder.
type AccountConfig struct {
	Enabled                  bool
	EnableIdentifierThrottle bool
	EnableIPThrottle         bool
	MaxAttempts              int
	Cooldown                 time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls session presentation.
type SessionConfig struct {
	NotSignedInLabel string
}

/*
====================================
PROFILE CONFIG
====================================
*/

// ProfileConfig controls the connectivity smoke write performed when a profile is
// loaded.
type ProfileConfig struct {
	SmokeTestEnabled bool
	SmokeTestKey     string
	SmokeTestValue   string
}

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// LoggingConfig selects the structured log format used by the default logger.
// It is ignored when a logger is supplied through [Builder.WithLogger].
type LoggingConfig struct {
	Format string // "json" (default) or "text"
	Level  slog.Level
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Account: AccountConfig{
			Enabled:                  true,
			EnableIdentifierThrottle: true,
			EnableIPThrottle:         true,
			MaxAttempts:              5,
			Cooldown:                 15 * time.Minute,
		},
		Session: SessionConfig{
			NotSignedInLabel: DefaultNotSignedInLabel,
		},
		Profile: ProfileConfig{
			SmokeTestEnabled: true,
			SmokeTestKey:     "message",
			SmokeTestValue:   "Hello, World!",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Logging: LoggingConfig{
			Format: "json",
			Level:  slog.LevelInfo,
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid setting in c.
func (c *Config) Validate() error {
	// Account
	if c.Account.EnableIdentifierThrottle || c.Account.EnableIPThrottle {
		if c.Account.MaxAttempts <= 0 {
			return errors.New("Account MaxAttempts must be > 0 when throttling is enabled")
		}
		if c.Account.Cooldown <= 0 {
			return errors.New("Account Cooldown must be > 0 when throttling is enabled")
		}
	}

	// Profile
	if c.Profile.SmokeTestEnabled && strings.TrimSpace(c.Profile.SmokeTestKey) == "" {
		return errors.New("Profile SmokeTestKey is required when the smoke test is enabled")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	// Logging
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("Logging Format %q is not supported", c.Logging.Format)
	}

	return nil
}

/*
====================================
LINT
====================================
*/

// LintSeverity ranks configuration warnings.
type LintSeverity int

const (
	// LintInfo marks settings worth knowing about.
	LintInfo LintSeverity = iota
	// LintWarn marks settings that weaken the deployment.
	LintWarn
	// LintHigh marks settings that are almost certainly mistakes.
	LintHigh
)

func (s LintSeverity) String() string {
	switch s {
	case LintInfo:
		return "INFO"
	case LintWarn:
		return "WARN"
	case LintHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// LintWarning is one finding from [Config.Lint].
type LintWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// LintResult is the ordered list of findings from [Config.Lint].
type LintResult []LintWarning

// Codes returns the warning codes in order.
func (r LintResult) Codes() []string {
	out := make([]string, 0, len(r))
	for _, w := range r {
		out = append(out, w.Code)
	}
	return out
}

// BySeverity returns the warnings at or above min.
func (r LintResult) BySeverity(min LintSeverity) LintResult {
	var out LintResult
	for _, w := range r {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError joins every warning at or above min into one error, or returns nil.
func (r LintResult) AsError(min LintSeverity) error {
	var errs []error
	for _, w := range r.BySeverity(min) {
		errs = append(errs, fmt.Errorf("%s [%s]: %s", w.Code, w.Severity, w.Message))
	}
	return errors.Join(errs...)
}

// Lint reports settings that are valid but questionable. It never fails.
func (c *Config) Lint() LintResult {
	var out LintResult

	if !c.Account.EnableIdentifierThrottle && !c.Account.EnableIPThrottle {
		out = append(out, LintWarning{
			Code:     "signup_unthrottled",
			Severity: LintWarn,
			Message:  "sign-up has no identifier or IP throttle",
		})
	}
	if c.Account.Enabled && c.Account.MaxAttempts > 50 {
		out = append(out, LintWarning{
			Code:     "signup_budget_large",
			Severity: LintInfo,
			Message:  fmt.Sprintf("sign-up budget of %d attempts per window is unusually large", c.Account.MaxAttempts),
		})
	}
	if !c.Audit.Enabled {
		out = append(out, LintWarning{
			Code:     "audit_disabled",
			Severity: LintInfo,
			Message:  "audit events are not dispatched",
		})
	}
	if c.Audit.Enabled && !c.Audit.DropIfFull && c.Audit.BufferSize < 16 {
		out = append(out, LintWarning{
			Code:     "audit_blocking_small_buffer",
			Severity: LintWarn,
			Message:  "blocking audit dispatch with a small buffer can stall flows",
		})
	}
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		out = append(out, LintWarning{
			Code:     "latency_without_metrics",
			Severity: LintHigh,
			Message:  "latency histograms are requested but metrics are disabled",
		})
	}

	return out
}
