package authflow

// User-facing messages. The text is part of the client contract and must not change.
const (
	MsgInvalidEmailFormat = "Invalid Email Format"
	MsgWeakPassword       = "Password must be more than 6 characters"
	MsgEmptyFields        = "Email and Password cannot be empty"
	MsgAccountCreated     = "Account created successfully!"
	MsgRegistrationFailed = "Registration Failed: "
	MsgSignInFailed       = "Login Failed: "
	MsgWelcomePrefix      = "Welcome, "

	// DefaultNotSignedInLabel is shown by SessionPolicy.DisplayName without a session.
	DefaultNotSignedInLabel = "Not signed in"
)

// RegistrationFailedMessage formats a provider failure as
// "Registration Failed: {provider message}".
func RegistrationFailedMessage(err error) string {
	return MsgRegistrationFailed + providerMessage(err)
}

// SignInFailedMessage formats a provider failure as "Login Failed: {provider message}".
func SignInFailedMessage(err error) string {
	return MsgSignInFailed + providerMessage(err)
}

func providerMessage(err error) string {
	if err == nil {
		return ""
	}
	if authErr, ok := AsAuthError(err); ok {
		return authErr.Error()
	}
	return err.Error()
}
