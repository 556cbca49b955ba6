package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("AUTHFLOW_SIGNING_KEY", "")

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"validate", "signup", "signin", "whoami", "signout", "profile", "demo", "metrics", "--redis-addr", "--session-file"} {
		assert.Contains(t, out, name)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "user@example.com", "abcdefg")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, err = run(t, "validate", "user@example.com", "abc")
	require.EqualError(t, err, "Password must be more than 6 characters")

	_, err = run(t, "validate", "nope", "abcdefg")
	require.EqualError(t, err, "Invalid Email Format")

	_, err = run(t, "validate", "only-one-arg")
	require.Error(t, err)
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, "demo", "--email", "demo@example.com")
	require.NoError(t, err)

	assert.Contains(t, out, "protected screen: redirect=true next=login")
	assert.Contains(t, out, "sign-up 1: Account created successfully! (next=login)")
	assert.Contains(t, out, "sign-up 2: Registration Failed: The email address is already in use by another account. (next=stay)")
	assert.Contains(t, out, "protected screen: Welcome, demo@example.com")
	assert.Contains(t, out, "email: demo@example.com")
	assert.Contains(t, out, "smoke write: ok")
	assert.Contains(t, out, "signed out: Not signed in")
}

func TestMetricsCommand(t *testing.T) {
	out, err := run(t, "metrics")
	require.NoError(t, err)

	assert.Contains(t, out, "# TYPE authflow_sign_ups_total counter")
	assert.Contains(t, out, "authflow_sign_ups_total{outcome=\"created\"} 1\n")
	assert.Contains(t, out, "authflow_sign_outs_total 1\n")
	assert.Contains(t, out, "authflow_create_account_latency_seconds_count 2\n")
}

func TestSessionFilePersistsAcrossInvocations(t *testing.T) {
	mr := miniredis.RunT(t)
	sessionFile := filepath.Join(t.TempDir(), "token")
	base := []string{"--redis-addr", mr.Addr(), "--session-file", sessionFile}
	with := func(args ...string) []string {
		return append(append([]string{}, base...), args...)
	}

	out, err := run(t, with("signup", "cli@example.com", "abcdefg")...)
	require.NoError(t, err)
	assert.Equal(t, "Account created successfully!\nnext: login\n", out)

	out, err = run(t, with("whoami")...)
	require.NoError(t, err)
	assert.Equal(t, "Welcome, cli@example.com\n", out)

	out, err = run(t, with("whoami", "--verify")...)
	require.NoError(t, err)
	assert.Equal(t, "Welcome, cli@example.com\nactive sessions: 1\n", out)

	_, err = run(t, with("signup", "cli@example.com", "abcdefg")...)
	require.EqualError(t, err, "Registration Failed: The email address is already in use by another account.")

	out, err = run(t, with("signout")...)
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\n", out)

	out, err = run(t, with("whoami")...)
	require.NoError(t, err)
	assert.Equal(t, "Not signed in\nnext: login\n", out)

	out, err = run(t, with("signin", "cli@example.com", "abcdefg")...)
	require.NoError(t, err)
	assert.Equal(t, "Welcome, cli@example.com\n", out)

	_, err = run(t, with("signin", "cli@example.com", "wrong-password")...)
	require.EqualError(t, err, "Login Failed: The supplied auth credential is incorrect, malformed or has expired.")

	out, err = run(t, with("profile")...)
	require.NoError(t, err)
	assert.Contains(t, out, "signed in: true")
	got, err := mr.Get("message")
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", got)
}
