package internaldefs

import "github.com/MrEthical07/authflow"

// Series is one engine counter inside a [CounterFamily]. LabelValue is empty
// for families without a label.
type Series struct {
	ID         authflow.MetricID
	LabelValue string
}

// CounterFamily publishes related engine counters under one metric name, told
// apart by a single label.
type CounterFamily struct {
	Name   string
	Help   string
	Label  string
	Series []Series
}

// HistogramDef names one engine histogram.
type HistogramDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// AuditDroppedName is the counter exported from Engine.AuditDropped.
const (
	AuditDroppedName = "authflow_audit_dropped_total"
	AuditDroppedHelp = "Audit events dropped because the dispatcher buffer was full."
)

// Sign-up outcomes that are not validation results.
const (
	OutcomeCreated         = "created"
	OutcomeProviderFailure = "provider_failure"
	OutcomeRateLimited     = "rate_limited"
)

// CounterFamilies lists every exported counter family in output order.
//
// Sign-up rejections reuse ValidationResult names, so dashboards and audit
// metadata share one vocabulary.
var CounterFamilies = []CounterFamily{
	{
		Name:  "authflow_sign_ups_total",
		Help:  "Sign-up submissions by outcome.",
		Label: "outcome",
		Series: []Series{
			{ID: authflow.MetricSignUpSuccess, LabelValue: OutcomeCreated},
			{ID: authflow.MetricSignUpEmptyField, LabelValue: authflow.EmptyField.String()},
			{ID: authflow.MetricSignUpInvalidEmail, LabelValue: authflow.InvalidEmailFormat.String()},
			{ID: authflow.MetricSignUpWeakPassword, LabelValue: authflow.WeakPassword.String()},
			{ID: authflow.MetricSignUpProviderFailure, LabelValue: OutcomeProviderFailure},
			{ID: authflow.MetricSignUpRateLimited, LabelValue: OutcomeRateLimited},
		},
	},
	{
		Name:  "authflow_sign_ins_total",
		Help:  "Sign-in attempts by result.",
		Label: "result",
		Series: []Series{
			{ID: authflow.MetricSignInSuccess, LabelValue: "success"},
			{ID: authflow.MetricSignInFailure, LabelValue: "failure"},
		},
	},
	{
		Name:  "authflow_protected_entries_total",
		Help:  "Protected-screen entries, split by whether a live session let the viewer in.",
		Label: "session",
		Series: []Series{
			{ID: authflow.MetricSessionResumed, LabelValue: "resumed"},
			{ID: authflow.MetricSessionRedirect, LabelValue: "redirected"},
		},
	},
	{
		Name:   "authflow_sign_outs_total",
		Help:   "Sign-outs, including repeated sign-outs of an already signed-out viewer.",
		Series: []Series{{ID: authflow.MetricSignOut}},
	},
	{
		Name:   "authflow_profile_smoke_write_failures_total",
		Help:   "Profile loads whose connectivity write to the key/value store failed. The profile is still served.",
		Series: []Series{{ID: authflow.MetricProfileSmokeWriteFailure}},
	},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: authflow.MetricCreateAccountLatency, Name: "authflow_create_account_latency_seconds", Help: "Identity provider create-account latency."},
}

// HistogramBounds are the upper bounds of the engine's eight latency buckets, in
// seconds.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is HistogramBounds spelled for use inside metric names.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets copies raw into a fixed eight-bucket array, zero-filling
// missing buckets.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	copy(out[:], raw)
	return out
}

// CumulativeBuckets converts per-bucket counts to running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i, v := range raw {
		running += v
		out[i] = running
	}
	return out
}
