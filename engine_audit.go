package authflow

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventSignUpSuccess     = "sign_up_success"
	auditEventSignUpRejected    = "sign_up_rejected"
	auditEventSignUpFailure     = "sign_up_failure"
	auditEventSignUpRateLimited = "sign_up_rate_limited"
	auditEventSignInSuccess     = "sign_in_success"
	auditEventSignInFailure     = "sign_in_failure"
	auditEventSessionRedirect   = "session_redirect"
	auditEventSignOut           = "sign_out"
	auditEventProfileSmokeWrite = "profile_smoke_write"
)

// AuditErrorCode is the stable error classification written to
// [AuditEvent.Error].
type AuditErrorCode string

const (
	auditErrEmptyField         AuditErrorCode = "empty_field"
	auditErrInvalidEmail       AuditErrorCode = "invalid_email_format"
	auditErrWeakPassword       AuditErrorCode = "weak_password"
	auditErrDisabled           AuditErrorCode = "feature_disabled"
	auditErrRateLimited        AuditErrorCode = "rate_limited"
	auditErrDuplicate          AuditErrorCode = "duplicate"
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrProviderRejected   AuditErrorCode = "provider_rejected"
	auditErrUnsupported        AuditErrorCode = "unsupported"
	auditErrUnavailable        AuditErrorCode = "backend_unavailable"
	auditErrNotReady           AuditErrorCode = "not_ready"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	identifier string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp:  time.Now().UTC(),
		EventType:  eventType,
		UserID:     userID,
		Identifier: identifier,
		IP:         clientIPFromContext(ctx),
		Success:    success,
		Metadata:   metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrEmptyField):
		return auditErrEmptyField
	case errors.Is(err, ErrInvalidEmailFormat):
		return auditErrInvalidEmail
	case errors.Is(err, ErrWeakPassword):
		return auditErrWeakPassword
	case errors.Is(err, ErrSignUpDisabled):
		return auditErrDisabled
	case errors.Is(err, ErrSignUpRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrAccountExists):
		return auditErrDuplicate
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrProviderRejected):
		return auditErrProviderRejected
	case errors.Is(err, ErrSignInUnsupported):
		return auditErrUnsupported
	case errors.Is(err, ErrSignUpUnavailable),
		errors.Is(err, ErrProviderUnavailable):
		return auditErrUnavailable
	case errors.Is(err, ErrEngineNotReady):
		return auditErrNotReady
	default:
		return auditErrInternal
	}
}
