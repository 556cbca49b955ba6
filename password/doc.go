// Package password hashes and verifies account passwords with Argon2id.
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// [Argon2.NeedsUpgrade] reports hashes produced with weaker parameters so callers
// can rehash after the next successful sign-in.
//
// Password policy is not enforced here beyond rejecting empty and oversized input.
// Length rules belong to the validator and the identity provider.
package password
