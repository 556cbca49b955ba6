package authflow

import "context"

// EnterProtected decides what happens when a protected screen is opened.
//
// The gateway is asked for its current session exactly once. Without an
// authenticated session the caller is sent to [DestinationLogin]; otherwise the
// screen renders with the welcome text.
func (e *Engine) EnterProtected(ctx context.Context) Entry {
	state := e.CurrentSession(ctx)

	if e.Policy().RequiresAuthentication(state) {
		e.metricInc(MetricSessionRedirect)
		e.emitAudit(ctx, auditEventSessionRedirect, false, "", "", nil, nil)
		return Entry{
			Redirect: true,
			Next:     DestinationLogin,
		}
	}

	e.metricInc(MetricSessionResumed)
	return Entry{
		Next:    DestinationHome,
		Session: state,
		Welcome: e.Policy().WelcomeMessage(state),
	}
}

// SignOut tells the gateway to end the remote session and returns the signed-out
// state. The caller should then show [DestinationLogin].
//
// SignOut is idempotent: the result never depends on s.
func (e *Engine) SignOut(ctx context.Context, s SessionState) SessionState {
	if e.ready() {
		e.gateway.SignOutRemote(ctx)
	}

	e.metricInc(MetricSignOut)
	e.emitAudit(ctx, auditEventSignOut, true, s.UserID, s.UserEmail, nil, nil)

	return e.Policy().SignOut(s)
}
