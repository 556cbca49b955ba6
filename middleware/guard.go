package middleware

import (
	"context"
	"net/http"

	"github.com/MrEthical07/authflow"
)

type entryContextKey struct{}

type protectedEntry interface {
	EnterProtected(ctx context.Context) authflow.Entry
}

// EntryFromContext returns the decision stored by [Guard].
func EntryFromContext(ctx context.Context) (authflow.Entry, bool) {
	entry, ok := ctx.Value(entryContextKey{}).(authflow.Entry)
	return entry, ok
}

// Guard lets signed-in requests through to next with their [authflow.Entry] in
// the context. Signed-out requests are served by signedOut.
func Guard(engine *authflow.Engine, signedOut http.Handler) func(http.Handler) http.Handler {
	var src protectedEntry
	if engine != nil {
		src = engine
	}
	return guard(src, signedOut)
}

func guard(src protectedEntry, signedOut http.Handler) func(http.Handler) http.Handler {
	if signedOut == nil {
		signedOut = http.HandlerFunc(unauthorized)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if src == nil {
				unauthorized(w, r)
				return
			}

			entry := src.EnterProtected(r.Context())
			if entry.Redirect {
				signedOut.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), entryContextKey{}, entry)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession answers signed-out requests with 401.
func RequireSession(engine *authflow.Engine) func(http.Handler) http.Handler {
	return Guard(engine, nil)
}

// RedirectToLogin sends signed-out requests to loginPath with 303 See Other.
func RedirectToLogin(engine *authflow.Engine, loginPath string) func(http.Handler) http.Handler {
	return Guard(engine, http.RedirectHandler(loginPath, http.StatusSeeOther))
}

func unauthorized(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
