// Package internal contains helpers that are private to authflow, such as session
// identifier generation.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher and Sink implementations)
//   - limiters: Redis-backed sign-up throttling
//   - logging: slog handler construction with trace correlation
package internal
