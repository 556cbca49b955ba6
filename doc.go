// Package authflow provides credential validation, session policy, and the sign-up /
// sign-in / sign-out flows of a client application backed by an external identity
// provider.
//
// The package is designed for concurrent use: Engine methods are safe to call from
// multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// authflow is the public surface. It exposes [Engine], [Builder], [Config], the pure
// validator functions ([ValidateEmail], [ValidatePasswordStrength],
// [ValidateCredentials]), [SessionPolicy], and the [AuthGateway] collaborator
// interface. Audit dispatch, rate limiting, logging setup and id generation live
// under internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Render UI or drive navigation. Flows return a [Destination]; the caller moves.
//   - Hold a process-wide identity or database handle. Collaborators are injected
//     through [Builder].
//   - Retry provider failures. The provider's message is surfaced verbatim.
//
// # Validation contract
//
// Validation is pure and allocation-light. Emptiness is checked before email format,
// and email format before password strength; an empty field never reaches the
// provider, the limiter, or the format checks.
package authflow
