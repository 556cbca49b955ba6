// Package identity is a Redis-backed identity provider implementing
// [authflow.SignInGateway].
//
// Accounts live in a Redis hash per email and hold an argon2id password hash.
// A successful sign-up or sign-in saves a [session.Session] record, mints an ID
// token with [jwt.Manager], and stores that token in a [TokenCache] as the
// provider's current user.
//
// # Staleness
//
// [Provider.CurrentSession] reads only the cached token, so a session revoked on
// another device still looks live until the token expires. Use
// [Provider.VerifySession] for a read-through check.
//
// # Error messages
//
// Failures are returned as [*authflow.AuthError] whose Message is written for end
// users and is displayed verbatim by the engine.
package identity
