package authflow

import "context"

// LoadProfile returns the data a profile screen is prefilled with.
//
// When the smoke test is enabled it first writes the configured value to the
// configured key through the injected [kv.Writer]. The outcome is logged,
// audited and reported in Profile.SmokeWrite, and never changes Email or SignedIn.
func (e *Engine) LoadProfile(ctx context.Context) Profile {
	var profile Profile

	if e != nil && e.config.Profile.SmokeTestEnabled {
		profile.SmokeWrite = e.smokeWrite(ctx)
	}

	state := e.CurrentSession(ctx)
	if state.Authenticated {
		profile.SignedIn = true
		profile.Email = state.UserEmail
	}

	return profile
}

func (e *Engine) smokeWrite(ctx context.Context) error {
	if e.kv == nil {
		return nil
	}

	key := e.config.Profile.SmokeTestKey
	err := e.kv.SetValue(ctx, key, e.config.Profile.SmokeTestValue)
	if err != nil {
		e.metricInc(MetricProfileSmokeWriteFailure)
		e.logger.WarnContext(ctx, "profile smoke write failed", "key", key, "error", err)
	} else {
		e.logger.DebugContext(ctx, "profile smoke write succeeded", "key", key)
	}

	e.emitAudit(ctx, auditEventProfileSmokeWrite, err == nil, "", "", err, func() map[string]string {
		return map[string]string{
			"key": key,
		}
	})

	return err
}
