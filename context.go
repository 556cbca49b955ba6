package authflow

import "context"

type clientIPContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Engine uses it for
// per-IP sign-up throttling and audit records.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

// ClientIPFromContext returns the address stored by [WithClientIP], or "".
func ClientIPFromContext(ctx context.Context) string {
	return clientIPFromContext(ctx)
}
