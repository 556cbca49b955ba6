package internal

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

const sessionIDSize = 16

// NewSessionID returns a fresh 128-bit identifier encoded as unpadded base64url.
func NewSessionID() (string, error) {
	var raw [sessionIDSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}

// ValidSessionID reports whether sid has the shape produced by NewSessionID.
func ValidSessionID(sid string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(sid)
	return err == nil && len(raw) == sessionIDSize
}

// ErrInvalidSessionID is returned for identifiers that fail ValidSessionID.
var ErrInvalidSessionID = errors.New("invalid session id")
