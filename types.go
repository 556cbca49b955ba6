package authflow

import (
	"io"

	internalaudit "github.com/MrEthical07/authflow/internal/audit"
)

// ValidationResult is the tagged outcome of [ValidateCredentials].
//
// The zero value is [Valid]. Results are immutable values; callers dispatch on them
// once to pick the feedback shown to the user.
type ValidationResult uint8

const (
	// Valid means both fields are present, the email matches the accepted format,
	// and the password is long enough.
	Valid ValidationResult = iota
	// EmptyField means the email or the password is empty.
	EmptyField
	// InvalidEmailFormat means the email does not match the accepted format.
	InvalidEmailFormat
	// WeakPassword means the password has six characters or fewer.
	WeakPassword
)

// String returns a stable snake_case name used in audit metadata and logs.
func (r ValidationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case EmptyField:
		return "empty_field"
	case InvalidEmailFormat:
		return "invalid_email_format"
	case WeakPassword:
		return "weak_password"
	default:
		return "unknown"
	}
}

// Message returns the user-facing text for r. Valid has no message.
func (r ValidationResult) Message() string {
	switch r {
	case EmptyField:
		return MsgEmptyFields
	case InvalidEmailFormat:
		return MsgInvalidEmailFormat
	case WeakPassword:
		return MsgWeakPassword
	default:
		return ""
	}
}

// Err maps r to its sentinel error so callers can use errors.Is. Valid maps to nil.
func (r ValidationResult) Err() error {
	switch r {
	case Valid:
		return nil
	case EmptyField:
		return ErrEmptyField
	case InvalidEmailFormat:
		return ErrInvalidEmailFormat
	case WeakPassword:
		return ErrWeakPassword
	default:
		return ErrEngineNotReady
	}
}

// OK reports whether r is [Valid].
func (r ValidationResult) OK() bool {
	return r == Valid
}

// Credentials is an email/password pair captured for a single submit action.
// It is never persisted by this package.
type Credentials struct {
	Email    string
	Password string
}

// Validate runs [ValidateCredentials] on c.
func (c Credentials) Validate() ValidationResult {
	return ValidateCredentials(c.Email, c.Password)
}

// SessionState is a client-side snapshot of the identity provider's current user.
//
// An empty UserEmail means the email is absent. SessionState values are replaced
// wholesale on every transition and never mutated in place.
type SessionState struct {
	Authenticated bool
	UserEmail     string
	UserID        string
}

// HasEmail reports whether the snapshot carries a user email.
func (s SessionState) HasEmail() bool {
	return s.UserEmail != ""
}

// Destination is the screen a flow asks the caller to show next.
type Destination uint8

const (
	// DestinationStay keeps the current screen (typically to show a message).
	DestinationStay Destination = iota
	// DestinationLogin is the authentication entry point.
	DestinationLogin
	// DestinationHome is the protected landing screen.
	DestinationHome
)

func (d Destination) String() string {
	switch d {
	case DestinationStay:
		return "stay"
	case DestinationLogin:
		return "login"
	case DestinationHome:
		return "home"
	default:
		return "unknown"
	}
}

// SignUpOutcome is the single result of one sign-up submission.
//
// Result is the validation verdict. When Result is [Valid], Err carries the
// provider failure (an [*AuthError]) or a local backend error, and Session the new
// session on success. Message is always the exact text to show the user.
type SignUpOutcome struct {
	Result  ValidationResult
	Session SessionState
	Err     error
	Message string
	Next    Destination
}

// Succeeded reports whether the account was created.
func (o SignUpOutcome) Succeeded() bool {
	return o.Result == Valid && o.Err == nil
}

// SignInOutcome is the result of one sign-in submission.
type SignInOutcome struct {
	Result  ValidationResult
	Session SessionState
	Err     error
	Message string
	Next    Destination
}

// Succeeded reports whether the user is now signed in.
func (o SignInOutcome) Succeeded() bool {
	return o.Result == Valid && o.Err == nil && o.Session.Authenticated
}

// Entry is the decision taken when a protected screen is entered.
type Entry struct {
	Redirect bool
	Next     Destination
	Session  SessionState
	Welcome  string
}

// Profile is the data a profile screen is prefilled with.
type Profile struct {
	Email      string
	SignedIn   bool
	SmokeWrite error
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
