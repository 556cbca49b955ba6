package authflow

import (
	"strings"
	"testing"
)

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func TestLint_DefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	ws := cfg.Lint()
	codes := ws.Codes()

	if containsCode(codes, "signup_unthrottled") {
		t.Error("default config throttles sign-up")
	}
	if !containsCode(codes, "audit_disabled") {
		t.Error("expected audit_disabled info for default config")
	}
	if len(ws.BySeverity(LintWarn)) != 0 {
		t.Errorf("default config should carry no warnings, got %v", ws.BySeverity(LintWarn).Codes())
	}
}

func TestLint_Unthrottled(t *testing.T) {
	cfg := defaultConfig()
	cfg.Account.EnableIdentifierThrottle = false
	cfg.Account.EnableIPThrottle = false
	if !containsCode(cfg.Lint().Codes(), "signup_unthrottled") {
		t.Error("expected signup_unthrottled warning")
	}
}

func TestLint_LargeBudget(t *testing.T) {
	cfg := defaultConfig()
	cfg.Account.MaxAttempts = 500
	if !containsCode(cfg.Lint().Codes(), "signup_budget_large") {
		t.Error("expected signup_budget_large info")
	}
}

func TestLint_BlockingSmallBuffer(t *testing.T) {
	cfg := defaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.DropIfFull = false
	cfg.Audit.BufferSize = 4
	codes := cfg.Lint().Codes()
	if !containsCode(codes, "audit_blocking_small_buffer") {
		t.Error("expected audit_blocking_small_buffer warning")
	}
	if containsCode(codes, "audit_disabled") {
		t.Error("audit is enabled")
	}
}

func TestLint_LatencyWithoutMetrics(t *testing.T) {
	cfg := defaultConfig()
	cfg.Metrics.EnableLatencyHistograms = true

	ws := cfg.Lint()
	high := ws.BySeverity(LintHigh)
	if len(high) != 1 || high[0].Code != "latency_without_metrics" {
		t.Fatalf("expected one HIGH latency_without_metrics, got %v", high.Codes())
	}

	err := ws.AsError(LintHigh)
	if err == nil || !strings.Contains(err.Error(), "latency_without_metrics [HIGH]") {
		t.Fatalf("unexpected AsError result %v", err)
	}
	if ws.AsError(LintHigh+1) != nil {
		t.Fatal("expected nil error above HIGH")
	}
}

func TestLintSeverityString(t *testing.T) {
	for sev, want := range map[LintSeverity]string{
		LintInfo: "INFO",
		LintWarn: "WARN",
		LintHigh: "HIGH",
		9:        "UNKNOWN",
	} {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sev, got, want)
		}
	}
}
