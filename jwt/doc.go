// Package jwt issues and verifies the ID tokens the identity provider hands to
// signed-in clients.
//
// An ID token names the account (uid, email) and the server-side session record
// (sid). Verification is strict: the algorithm is pinned, and issuer, audience
// and key id are checked when configured.
package jwt
