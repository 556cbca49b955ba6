package authflow

// SessionPolicy decides what a viewer may see for a given [SessionState].
//
// The zero value is ready to use. SessionPolicy performs no I/O and no navigation.
type SessionPolicy struct {
	// NotSignedInLabel replaces DefaultNotSignedInLabel when non-empty.
	NotSignedInLabel string
}

// RequiresAuthentication reports whether a protected screen must redirect to the
// authentication entry point instead of rendering.
func (p SessionPolicy) RequiresAuthentication(s SessionState) bool {
	return !s.Authenticated
}

// DisplayName returns the signed-in email, or the not-signed-in placeholder.
func (p SessionPolicy) DisplayName(s SessionState) string {
	if !s.Authenticated || !s.HasEmail() {
		return p.placeholder()
	}
	return s.UserEmail
}

// WelcomeMessage returns "Welcome, {email}" for a signed-in session with an
// email. Otherwise it returns the same placeholder as [SessionPolicy.DisplayName].
func (p SessionPolicy) WelcomeMessage(s SessionState) string {
	if !s.Authenticated || !s.HasEmail() {
		return p.placeholder()
	}
	return MsgWelcomePrefix + p.DisplayName(s)
}

// SignOut returns the signed-out state. It ignores s: signing out from any state,
// any number of times, yields the same value.
func (p SessionPolicy) SignOut(_ SessionState) SessionState {
	return SessionState{}
}

func (p SessionPolicy) placeholder() string {
	if p.NotSignedInLabel != "" {
		return p.NotSignedInLabel
	}
	return DefaultNotSignedInLabel
}
