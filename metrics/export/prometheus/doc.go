// Package prometheus renders authflow engine metrics in the Prometheus text
// exposition format.
//
// [NewPrometheusExporter] wraps an [authflow.Engine] and exposes an [http.Handler].
// Counters are named authflow_*_total; the single histogram is
// authflow_create_account_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the Handler.
//   - Mutate engine state.
package prometheus
