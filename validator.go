package authflow

import (
	"regexp"
	"unicode/utf16"
)

// minPasswordExclusive is the length a password must exceed.
const minPasswordExclusive = 6

// The domain part only admits lowercase letters; digits, uppercase and hyphens
// there are rejected.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-z]+(\.[a-z]+)+$`)

// ValidateEmail reports whether email matches the accepted address format:
// a local part of [a-zA-Z0-9._-], an "@", a lowercase label, and one or more
// "."-separated lowercase labels.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePasswordStrength reports whether password has more than six characters,
// as measured by [PasswordLength].
func ValidatePasswordStrength(password string) bool {
	return PasswordLength(password) > minPasswordExclusive
}

// PasswordLength returns the length of password in UTF-16 code units, the unit
// client SDKs and hosted identity providers count in. Characters outside the
// Basic Multilingual Plane, such as most emoji, count as two.
func PasswordLength(password string) int {
	n := 0
	for _, r := range password {
		n += utf16.RuneLen(r)
	}
	return n
}

// ValidateCredentials judges an email/password pair.
//
// Emptiness is checked first, then the email format, then password strength.
func ValidateCredentials(email, password string) ValidationResult {
	switch {
	case email == "" || password == "":
		return EmptyField
	case !ValidateEmail(email):
		return InvalidEmailFormat
	case !ValidatePasswordStrength(password):
		return WeakPassword
	default:
		return Valid
	}
}
