package authflow

import "testing"

func TestSessionPolicyRequiresAuthentication(t *testing.T) {
	var p SessionPolicy

	if !p.RequiresAuthentication(SessionState{}) {
		t.Fatal("unauthenticated session must require authentication")
	}
	if p.RequiresAuthentication(SessionState{Authenticated: true, UserEmail: "a@b.com"}) {
		t.Fatal("authenticated session must not require authentication")
	}
}

func TestSessionPolicyDisplayName(t *testing.T) {
	var p SessionPolicy

	if got := p.DisplayName(SessionState{Authenticated: true, UserEmail: "a@b.com"}); got != "a@b.com" {
		t.Fatalf("expected email, got %q", got)
	}
	if got := p.DisplayName(SessionState{}); got != "Not signed in" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := p.DisplayName(SessionState{Authenticated: true}); got != "Not signed in" {
		t.Fatalf("missing email must show placeholder, got %q", got)
	}

	custom := SessionPolicy{NotSignedInLabel: "Guest"}
	if got := custom.DisplayName(SessionState{}); got != "Guest" {
		t.Fatalf("expected custom placeholder, got %q", got)
	}
}

func TestSessionPolicyWelcomeMessage(t *testing.T) {
	var p SessionPolicy

	if got := p.WelcomeMessage(SessionState{Authenticated: true, UserEmail: "a@b.com"}); got != "Welcome, a@b.com" {
		t.Fatalf("unexpected welcome %q", got)
	}
	if got := p.WelcomeMessage(SessionState{}); got != "Not signed in" {
		t.Fatalf("unexpected welcome %q", got)
	}

	noEmail := SessionState{Authenticated: true}
	if got, name := p.WelcomeMessage(noEmail), p.DisplayName(noEmail); got != name {
		t.Fatalf("welcome %q must agree with display name %q", got, name)
	}

	custom := SessionPolicy{NotSignedInLabel: "Guest"}
	if got := custom.WelcomeMessage(noEmail); got != "Guest" {
		t.Fatalf("expected custom placeholder, got %q", got)
	}
}

func TestSessionPolicySignOut(t *testing.T) {
	var p SessionPolicy
	states := []SessionState{
		{},
		{Authenticated: true},
		{Authenticated: true, UserEmail: "a@b.com", UserID: "u1"},
		{UserEmail: "stale@b.com"},
	}

	for _, s := range states {
		once := p.SignOut(s)
		twice := p.SignOut(once)
		if once != twice {
			t.Fatalf("sign-out not idempotent for %+v: %+v != %+v", s, once, twice)
		}
		if !p.RequiresAuthentication(once) {
			t.Fatalf("signed-out state must require authentication, from %+v", s)
		}
		if once.HasEmail() {
			t.Fatalf("signed-out state must not carry an email, from %+v", s)
		}
	}
}
