package authflow

import (
	"errors"
)

var (
	// ErrEmptyField is returned by ValidationResult.Err for EmptyField.
	ErrEmptyField = errors.New("email and password cannot be empty")
	// ErrInvalidEmailFormat is returned by ValidationResult.Err for InvalidEmailFormat.
	ErrInvalidEmailFormat = errors.New("invalid email format")
	// ErrWeakPassword is returned by ValidationResult.Err for WeakPassword.
	ErrWeakPassword = errors.New("password too short")
	// ErrEngineNotReady is returned when an Engine was not built through Builder.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrSignUpDisabled is returned when Config.Account.Enabled is false.
	ErrSignUpDisabled = errors.New("sign-up disabled")
	// ErrSignUpRateLimited is returned when the sign-up attempt budget is exhausted.
	ErrSignUpRateLimited = errors.New("sign-up rate limited")
	// ErrSignUpUnavailable is returned when the sign-up limiter backend fails.
	ErrSignUpUnavailable = errors.New("sign-up backend unavailable")
	// ErrSignInUnsupported is returned when the gateway cannot sign users in.
	ErrSignInUnsupported = errors.New("gateway does not support sign-in")
	// ErrAccountExists is wrapped by provider errors for duplicate emails.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidCredentials is wrapped by provider errors for failed sign-ins.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrProviderUnavailable is wrapped by provider errors for backend failures.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	// ErrProviderRejected is wrapped by provider errors for requests the provider refuses.
	ErrProviderRejected = errors.New("identity provider rejected request")
)

// AuthError is an opaque failure reported by the identity provider.
//
// Message is the provider's human-readable text and is shown to the user verbatim.
// Err, when set, classifies the failure for errors.Is.
type AuthError struct {
	Message string
	Err     error
}

// NewAuthError returns an [*AuthError] with the given message and cause.
func NewAuthError(message string, cause error) *AuthError {
	return &AuthError{Message: message, Err: cause}
}

func (e *AuthError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsAuthError extracts the provider error from err, if any.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
