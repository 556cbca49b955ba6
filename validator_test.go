package authflow

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last_name-1@mail.example.org", true},
		{"User.Name@example.co", true},
		{"user@ex1ample.com", false},
		{"user@Example.com", false},
		{"user@exa-mple.com", false},
		{"bad-email", false},
		{"user@example", false},
		{"user@example.", false},
		{"user@.com", false},
		{"user@example..com", false},
		{"us er@example.com", false},
		{"user+tag@example.com", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abcdefg", true},
		{"abcdef", false},
		{"", false},
		{"longenough", true},
		{"ééééééé", true},
		{"éééééé", false},
		{"😀😀😀😀", true},
		{"😀😀😀", false},
		{"😀😀😀a", true},
	}

	for _, tt := range tests {
		if got := ValidatePasswordStrength(tt.password); got != tt.want {
			t.Errorf("ValidatePasswordStrength(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestPasswordLengthCountsUTF16Units(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"abc", 3},
		{"ééé", 3},
		{"😀", 2},
		{"a😀b", 4},
		{"\xff", 1},
	}

	for _, tt := range tests {
		if got := PasswordLength(tt.password); got != tt.want {
			t.Errorf("PasswordLength(%q) = %d, want %d", tt.password, got, tt.want)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		email    string
		password string
		want     ValidationResult
	}{
		{"", "abcdefg", EmptyField},
		{"user@example.com", "", EmptyField},
		{"", "", EmptyField},
		{"bademail", "", EmptyField},
		{"bademail", "abcdefg", InvalidEmailFormat},
		{"bademail", "short", InvalidEmailFormat},
		{"user@example.com", "short", WeakPassword},
		{"user@example.com", "abcdef", WeakPassword},
		{"user@example.com", "longenough", Valid},
	}

	for _, tt := range tests {
		if got := ValidateCredentials(tt.email, tt.password); got != tt.want {
			t.Errorf("ValidateCredentials(%q, %q) = %s, want %s", tt.email, tt.password, got, tt.want)
		}
		creds := Credentials{Email: tt.email, Password: tt.password}
		if got := creds.Validate(); got != tt.want {
			t.Errorf("Credentials.Validate(%q, %q) = %s, want %s", tt.email, tt.password, got, tt.want)
		}
	}
}

func TestValidationResultMapping(t *testing.T) {
	tests := []struct {
		result  ValidationResult
		name    string
		message string
		err     error
	}{
		{Valid, "valid", "", nil},
		{EmptyField, "empty_field", "Email and Password cannot be empty", ErrEmptyField},
		{InvalidEmailFormat, "invalid_email_format", "Invalid Email Format", ErrInvalidEmailFormat},
		{WeakPassword, "weak_password", "Password must be more than 6 characters", ErrWeakPassword},
	}

	for _, tt := range tests {
		if got := tt.result.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.result.Message(); got != tt.message {
			t.Errorf("%s Message() = %q, want %q", tt.name, got, tt.message)
		}
		if got := tt.result.Err(); !errors.Is(got, tt.err) || (tt.err == nil && got != nil) {
			t.Errorf("%s Err() = %v, want %v", tt.name, got, tt.err)
		}
		if tt.result.OK() != (tt.result == Valid) {
			t.Errorf("%s OK() mismatch", tt.name)
		}
	}
}

func TestRegistrationFailedMessage(t *testing.T) {
	authErr := NewAuthError("The email address is badly formatted.", ErrProviderRejected)
	if got := RegistrationFailedMessage(authErr); got != "Registration Failed: The email address is badly formatted." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := RegistrationFailedMessage(errors.New("boom")); got != "Registration Failed: boom" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := SignInFailedMessage(authErr); got != "Login Failed: The email address is badly formatted." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAuthErrorUnwrap(t *testing.T) {
	err := NewAuthError("", ErrProviderUnavailable)
	if err.Error() != ErrProviderUnavailable.Error() {
		t.Fatalf("expected cause text, got %q", err.Error())
	}
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatal("expected errors.Is to match cause")
	}

	wrapped := errors.Join(errors.New("context"), err)
	got, ok := AsAuthError(wrapped)
	if !ok || got != err {
		t.Fatal("expected AsAuthError to find the provider error")
	}
	if _, ok := AsAuthError(errors.New("plain")); ok {
		t.Fatal("plain error is not an AuthError")
	}
}

func FuzzValidateCredentials(f *testing.F) {
	f.Add("user@example.com", "abcdefg")
	f.Add("", "")
	f.Add("bademail", "x")
	f.Fuzz(func(t *testing.T, email, password string) {
		got := ValidateCredentials(email, password)
		switch {
		case email == "" || password == "":
			if got != EmptyField {
				t.Fatalf("empty input must yield EmptyField, got %s", got)
			}
		case got == Valid:
			if !ValidateEmail(email) || !ValidatePasswordStrength(password) {
				t.Fatalf("Valid returned for %q/%q", email, password)
			}
		}
	})
}
