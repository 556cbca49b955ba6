// Package kv writes single string values to a remote key/value backend.
//
// The engine uses it for the profile connectivity smoke write. Writers must be
// safe for concurrent use.
package kv
