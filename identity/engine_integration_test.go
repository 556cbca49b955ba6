package identity

import (
	"context"
	"testing"

	"github.com/MrEthical07/authflow"
	"github.com/MrEthical07/authflow/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineWithRedisProvider(t *testing.T) {
	p, mr, rdb := newTestProvider(t, nil)

	engine, err := authflow.New().
		WithGateway(p).
		WithRedis(rdb).
		WithLogger(logging.Discard()).
		Build()
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	ctx := context.Background()

	entry := engine.EnterProtected(ctx)
	assert.True(t, entry.Redirect)
	assert.Equal(t, authflow.DestinationLogin, entry.Next)

	out := engine.SubmitSignUp(ctx, "new@example.com", "abcdefg")
	outcome, err := out.Wait(ctx)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, authflow.MsgAccountCreated, outcome.Message)

	dup := engine.SignUp(ctx, "new@example.com", "abcdefg")
	assert.False(t, dup.Succeeded())
	assert.Equal(t, "Registration Failed: "+MsgEmailInUse, dup.Message)

	entry = engine.EnterProtected(ctx)
	assert.False(t, entry.Redirect)
	assert.Equal(t, "Welcome, new@example.com", entry.Welcome)

	profile := engine.LoadProfile(ctx)
	assert.True(t, profile.SignedIn)
	assert.Equal(t, "new@example.com", profile.Email)
	require.NoError(t, profile.SmokeWrite)
	got, err := mr.Get("message")
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", got)

	signedOut := engine.SignOut(ctx, entry.Session)
	assert.Equal(t, authflow.SessionState{}, signedOut)
	require.NoError(t, p.Close())
	assert.True(t, engine.EnterProtected(ctx).Redirect)

	in := engine.SignIn(ctx, "new@example.com", "wrongpass")
	assert.Equal(t, "Login Failed: "+MsgInvalidCredential, in.Message)

	in = engine.SignIn(ctx, "new@example.com", "abcdefg")
	assert.True(t, in.Succeeded())
	assert.Equal(t, "Welcome, new@example.com", in.Message)
}
