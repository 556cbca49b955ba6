package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	sessionFormatVersionV1 byte = 1

	sessionFormatVersionCurrent = sessionFormatVersionV1

	maxUserIDLen    = 255
	maxSessionIDLen = 255
	maxEmailLen     = 320
)

// CurrentSchemaVersion is the schema version written by [Encode].
const CurrentSchemaVersion = sessionFormatVersionCurrent

// ErrCorruptSession is returned by [Decode] for blobs it cannot read.
var ErrCorruptSession = errors.New("corrupt session blob")

// Encode serializes s as:
//
//	version(1) | sidLen(1) sid | uidLen(1) uid | emailLen(2) email | created(8) | expires(8)
//
// Integers are big-endian.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}
	if len(s.SessionID) == 0 || len(s.SessionID) > maxSessionIDLen {
		return nil, errors.New("session id length invalid")
	}
	if len(s.UserID) == 0 || len(s.UserID) > maxUserIDLen {
		return nil, errors.New("user id length invalid")
	}
	if len(s.Email) > maxEmailLen {
		return nil, errors.New("email too long")
	}

	buf := bytes.NewBuffer(make([]byte, 0, 1+1+len(s.SessionID)+1+len(s.UserID)+2+len(s.Email)+16))

	buf.WriteByte(sessionFormatVersionCurrent)

	buf.WriteByte(byte(len(s.SessionID)))
	buf.WriteString(s.SessionID)

	buf.WriteByte(byte(len(s.UserID)))
	buf.WriteString(s.UserID)

	var emailLen [2]byte
	binary.BigEndian.PutUint16(emailLen[:], uint16(len(s.Email)))
	buf.Write(emailLen[:])
	buf.WriteString(s.Email)

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(s.CreatedAt))
	buf.Write(ts[:])
	binary.BigEndian.PutUint64(ts[:], uint64(s.ExpiresAt))
	buf.Write(ts[:])

	return buf.Bytes(), nil
}

// Decode parses a blob produced by [Encode].
func Decode(data []byte) (*Session, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrCorruptSession)
	}

	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != sessionFormatVersionCurrent {
		return nil, fmt.Errorf("%w: unsupported session schema version %d", ErrCorruptSession, version)
	}

	s := &Session{SchemaVersion: version}

	if s.SessionID, err = readShortString(reader); err != nil {
		return nil, err
	}
	if s.SessionID == "" {
		return nil, fmt.Errorf("%w: empty session id", ErrCorruptSession)
	}
	if s.UserID, err = readShortString(reader); err != nil {
		return nil, err
	}
	if s.UserID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrCorruptSession)
	}

	var emailLen uint16
	if err := binary.Read(reader, binary.BigEndian, &emailLen); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if emailLen > maxEmailLen {
		return nil, fmt.Errorf("%w: email too long", ErrCorruptSession)
	}
	email := make([]byte, emailLen)
	if _, err := io.ReadFull(reader, email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	s.Email = string(email)

	if err := binary.Read(reader, binary.BigEndian, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if err := binary.Read(reader, binary.BigEndian, &s.ExpiresAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}

	if reader.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptSession, reader.Len())
	}

	return s, nil
}

func readShortString(reader *bytes.Reader) (string, error) {
	n, err := reader.ReadByte()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	return string(raw), nil
}
