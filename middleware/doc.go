// Package middleware adapts authflow.Engine session decisions to net/http.
//
// # Guards
//
//   - [Guard]: runs Engine.EnterProtected and hands signed-out requests to a
//     caller-chosen handler.
//   - [RequireSession]: answers signed-out requests with 401.
//   - [RedirectToLogin]: answers signed-out requests with a 303 to the login path.
//
// Guarded handlers read the entry decision with [EntryFromContext].
//
// [ClientIP] records the caller address with authflow.WithClientIP so the engine's
// per-IP sign-up throttle can see it.
//
// # What this package must NOT do
//
//   - Talk to the identity provider directly (the engine owns the gateway).
//   - Decide who is signed in (delegated to Engine.EnterProtected).
package middleware
