package authflow

import "context"

// AuthGateway abstracts the identity provider.
//
// Implementations are constructed by the application and injected through
// [Builder.WithGateway]; the engine never reaches for a global handle.
//
//   - CreateAccount blocks until the provider answers. On failure it returns an
//     [*AuthError] whose Message is safe to show to the user. Account creation is
//     atomic from the caller's point of view.
//   - CurrentSession returns a synchronous snapshot that may lag the provider.
//   - SignOutRemote notifies the provider and returns immediately. It never fails
//     from the caller's point of view.
type AuthGateway interface {
	CreateAccount(ctx context.Context, creds Credentials) (SessionState, error)
	CurrentSession(ctx context.Context) SessionState
	SignOutRemote(ctx context.Context)
}

// SignInGateway is implemented by gateways that can also sign existing users in.
type SignInGateway interface {
	AuthGateway
	SignIn(ctx context.Context, creds Credentials) (SessionState, error)
}
