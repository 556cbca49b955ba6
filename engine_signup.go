package authflow

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/authflow/internal/limiters"
)

// SignUp validates the submitted credentials and, when they are acceptable, asks
// the gateway to create the account.
//
// Rejected input never reaches the limiter or the gateway. The gateway is called
// at most once and never retried. The returned outcome always carries the exact
// text to show the user.
func (e *Engine) SignUp(ctx context.Context, email, password string) SignUpOutcome {
	if !e.ready() {
		return signUpFailure(ErrEngineNotReady)
	}

	result := ValidateCredentials(email, password)
	switch result {
	case Valid:
		return e.createAccount(ctx, Credentials{Email: email, Password: password})
	default:
		e.metricInc(rejectionMetric(result))
		e.emitAudit(ctx, auditEventSignUpRejected, false, "", email, result.Err(), func() map[string]string {
			return map[string]string{
				"reason": result.String(),
			}
		})
		return SignUpOutcome{
			Result:  result,
			Message: result.Message(),
			Next:    DestinationStay,
		}
	}
}

func (e *Engine) createAccount(ctx context.Context, creds Credentials) SignUpOutcome {
	if !e.config.Account.Enabled {
		e.emitAudit(ctx, auditEventSignUpFailure, false, "", creds.Email, ErrSignUpDisabled, nil)
		return signUpFailure(ErrSignUpDisabled)
	}

	if err := e.limiter.Enforce(ctx, creds.Email, clientIPFromContext(ctx)); err != nil {
		if errors.Is(err, limiters.ErrSignUpRateLimited) {
			e.metricInc(MetricSignUpRateLimited)
			e.emitAudit(ctx, auditEventSignUpRateLimited, false, "", creds.Email, ErrSignUpRateLimited, nil)
			return signUpFailure(ErrSignUpRateLimited)
		}
		e.logger.ErrorContext(ctx, "sign-up limiter unavailable", "error", err)
		e.emitAudit(ctx, auditEventSignUpFailure, false, "", creds.Email, ErrSignUpUnavailable, nil)
		return signUpFailure(ErrSignUpUnavailable)
	}

	start := time.Now()
	state, err := e.gateway.CreateAccount(ctx, creds)
	e.metrics.Observe(MetricCreateAccountLatency, time.Since(start))

	if err != nil {
		e.metricInc(MetricSignUpProviderFailure)
		e.logger.WarnContext(ctx, "account creation failed", "error", err)
		e.emitAudit(ctx, auditEventSignUpFailure, false, "", creds.Email, err, nil)
		return signUpFailure(err)
	}

	if err := e.limiter.Reset(ctx, creds.Email); err != nil {
		e.logger.WarnContext(ctx, "sign-up limiter reset failed", "error", err)
	}

	e.metricInc(MetricSignUpSuccess)
	e.emitAudit(ctx, auditEventSignUpSuccess, true, state.UserID, creds.Email, nil, nil)
	e.logger.InfoContext(ctx, "account created", "user_id", state.UserID)

	return SignUpOutcome{
		Result:  Valid,
		Session: state,
		Message: MsgAccountCreated,
		Next:    DestinationLogin,
	}
}

func signUpFailure(err error) SignUpOutcome {
	return SignUpOutcome{
		Result:  Valid,
		Err:     err,
		Message: RegistrationFailedMessage(err),
		Next:    DestinationStay,
	}
}

func rejectionMetric(r ValidationResult) MetricID {
	switch r {
	case EmptyField:
		return MetricSignUpEmptyField
	case InvalidEmailFormat:
		return MetricSignUpInvalidEmail
	default:
		return MetricSignUpWeakPassword
	}
}
