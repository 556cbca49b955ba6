package authflow

import "context"

// SignIn validates the submitted credentials and signs the user in through the
// gateway. The gateway must implement [SignInGateway].
//
// Validation follows the same order as [Engine.SignUp]. On success the caller
// should show [DestinationHome].
func (e *Engine) SignIn(ctx context.Context, email, password string) SignInOutcome {
	if !e.ready() {
		return signInFailure(ErrEngineNotReady)
	}

	result := ValidateCredentials(email, password)
	switch result {
	case Valid:
		return e.signIn(ctx, Credentials{Email: email, Password: password})
	default:
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInFailure, false, "", email, result.Err(), func() map[string]string {
			return map[string]string{
				"reason": result.String(),
			}
		})
		return SignInOutcome{
			Result:  result,
			Message: result.Message(),
			Next:    DestinationStay,
		}
	}
}

func (e *Engine) signIn(ctx context.Context, creds Credentials) SignInOutcome {
	gw, ok := e.gateway.(SignInGateway)
	if !ok {
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInFailure, false, "", creds.Email, ErrSignInUnsupported, nil)
		return signInFailure(ErrSignInUnsupported)
	}

	state, err := gw.SignIn(ctx, creds)
	if err != nil {
		e.metricInc(MetricSignInFailure)
		e.logger.WarnContext(ctx, "sign-in failed", "error", err)
		e.emitAudit(ctx, auditEventSignInFailure, false, "", creds.Email, err, nil)
		return signInFailure(err)
	}

	e.metricInc(MetricSignInSuccess)
	e.emitAudit(ctx, auditEventSignInSuccess, true, state.UserID, creds.Email, nil, nil)

	return SignInOutcome{
		Result:  Valid,
		Session: state,
		Message: e.policy.WelcomeMessage(state),
		Next:    DestinationHome,
	}
}

func signInFailure(err error) SignInOutcome {
	return SignInOutcome{
		Result:  Valid,
		Err:     err,
		Message: SignInFailedMessage(err),
		Next:    DestinationStay,
	}
}
