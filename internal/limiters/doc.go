// Package limiters provides the Redis-backed sign-up throttle.
//
// [SignUpLimiter] counts attempts per email and per client IP in fixed windows
// (INCR, then EXPIRE on the first hit). It is nil-safe: methods on a nil receiver
// return nil, which is how a disabled throttle is represented.
//
// # What this package must NOT do
//
//   - Import authflow (the engine maps these errors to its own).
//   - Decide consequences beyond counting; the engine picks the user message.
package limiters
