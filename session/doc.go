// Package session provides Redis-backed persistence and compact binary encoding for
// identity-provider sessions.
//
// # Binary encoding
//
// Sessions are stored as a versioned binary blob. [Decode] rejects unknown schema
// versions and trailing bytes, so a blob written by a newer release is never
// silently misread.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Session] model. It does
// NOT mint tokens or decide whether a viewer is signed in; those belong to the
// identity provider and the engine.
package session
