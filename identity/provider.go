package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MrEthical07/authflow"
	"github.com/MrEthical07/authflow/internal"
	"github.com/MrEthical07/authflow/internal/logging"
	"github.com/MrEthical07/authflow/jwt"
	"github.com/MrEthical07/authflow/password"
	"github.com/MrEthical07/authflow/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Provider messages. They mirror the wording users already see from hosted
// identity providers.
const (
	MsgEmailInUse         = "The email address is already in use by another account."
	MsgInvalidCredential  = "The supplied auth credential is incorrect, malformed or has expired."
	MsgBadlyFormattedMail = "The email address is badly formatted."
	MsgInternalError      = "An internal error has occurred."
	msgWeakPasswordFormat = "The given password is invalid. [ Password should be at least %d characters ]"
)

const (
	fieldUID  = "uid"
	fieldHash = "hash"
)

const createAccountScript = `
if redis.call("HSETNX", KEYS[1], "uid", ARGV[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "hash", ARGV[2], "created_at", ARGV[3])
return 1
`

// Deletes the account only while it still belongs to ARGV[1].
const deleteAccountScript = `
if redis.call("HGET", KEYS[1], "uid") == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var (
	createAccountLua = redis.NewScript(createAccountScript)
	deleteAccountLua = redis.NewScript(deleteAccountScript)
)

// Provider implements [authflow.SignInGateway] on Redis.
//
// It is safe for concurrent use. Call [Provider.Close] to wait for background
// sign-out cleanup before shutting down.
type Provider struct {
	redis    redis.UniversalClient
	config   Config
	hasher   *password.Argon2
	tokens   *jwt.Manager
	sessions *session.Store
	cache    TokenCache
	logger   *slog.Logger
	now      func() time.Time

	wg sync.WaitGroup
}

var _ authflow.SignInGateway = (*Provider)(nil)

// NewProvider validates cfg and returns a Provider. A nil cache defaults to a
// [MemoryCache]; a nil logger discards.
func NewProvider(redisClient redis.UniversalClient, cfg Config, cache TokenCache, logger *slog.Logger) (*Provider, error) {
	if redisClient == nil {
		return nil, errors.New("identity: redis client required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hasher, err := password.NewArgon2(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	jwtCfg := cfg.JWT
	if jwtCfg.TokenTTL <= 0 || jwtCfg.TokenTTL > cfg.SessionTTL {
		jwtCfg.TokenTTL = cfg.SessionTTL
	}
	tokens, err := jwt.NewManager(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	if cache == nil {
		cache = NewMemoryCache()
	}

	return &Provider{
		redis:    redisClient,
		config:   cfg,
		hasher:   hasher,
		tokens:   tokens,
		sessions: session.NewStore(redisClient, cfg.Prefix),
		cache:    cache,
		logger:   logging.OrDiscard(logger),
		now:      time.Now,
	}, nil
}

// Close waits for outstanding background session deletes.
func (p *Provider) Close() error {
	p.wg.Wait()
	return nil
}

func (p *Provider) accountKey(email string) string {
	return p.config.Prefix + ":acct:" + email
}

// CreateAccount registers creds.Email and signs the new account in.
func (p *Provider) CreateAccount(ctx context.Context, creds authflow.Credentials) (authflow.SessionState, error) {
	email := normalizeEmail(creds.Email)
	if !strings.Contains(email, "@") {
		return authflow.SessionState{}, authflow.NewAuthError(MsgBadlyFormattedMail, authflow.ErrProviderRejected)
	}
	if authflow.PasswordLength(creds.Password) < p.config.MinPasswordLength {
		return authflow.SessionState{}, authflow.NewAuthError(
			fmt.Sprintf(msgWeakPasswordFormat, p.config.MinPasswordLength),
			authflow.ErrProviderRejected,
		)
	}

	hash, err := p.hasher.Hash(creds.Password)
	if err != nil {
		if errors.Is(err, password.ErrPasswordTooLong) || errors.Is(err, password.ErrEmptyPassword) {
			return authflow.SessionState{}, authflow.NewAuthError(
				fmt.Sprintf(msgWeakPasswordFormat, p.config.MinPasswordLength),
				authflow.ErrProviderRejected,
			)
		}
		p.logger.ErrorContext(ctx, "password hash failed", "error", err)
		return authflow.SessionState{}, authflow.NewAuthError(MsgInternalError, authflow.ErrProviderUnavailable)
	}

	uid := uuid.NewString()
	created, err := createAccountLua.Run(
		ctx,
		p.redis,
		[]string{p.accountKey(email)},
		uid,
		hash,
		strconv.FormatInt(p.now().Unix(), 10),
	).Int()
	if err != nil {
		p.logger.ErrorContext(ctx, "account create failed", "error", err)
		return authflow.SessionState{}, unavailable(err)
	}
	if created == 0 {
		return authflow.SessionState{}, authflow.NewAuthError(MsgEmailInUse, authflow.ErrAccountExists)
	}

	state, err := p.startSession(ctx, uid, email)
	if err != nil {
		p.releaseAccount(ctx, email, uid)
		return authflow.SessionState{}, err
	}

	p.logger.InfoContext(ctx, "account created", "uid", uid)
	return state, nil
}

// releaseAccount deletes the account at email if uid still owns it.
func (p *Provider) releaseAccount(ctx context.Context, email, uid string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.config.SignOutTimeout)
	defer cancel()

	if err := deleteAccountLua.Run(cleanupCtx, p.redis, []string{p.accountKey(email)}, uid).Err(); err != nil {
		p.logger.ErrorContext(ctx, "account rollback failed", "uid", uid, "error", err)
	}
}

// SignIn verifies creds and makes the account the current user.
func (p *Provider) SignIn(ctx context.Context, creds authflow.Credentials) (authflow.SessionState, error) {
	email := normalizeEmail(creds.Email)

	fields, err := p.redis.HGetAll(ctx, p.accountKey(email)).Result()
	if err != nil {
		p.logger.ErrorContext(ctx, "account lookup failed", "error", err)
		return authflow.SessionState{}, unavailable(err)
	}
	uid, hash := fields[fieldUID], fields[fieldHash]
	if uid == "" || hash == "" {
		return authflow.SessionState{}, invalidCredential()
	}

	ok, err := p.hasher.Verify(creds.Password, hash)
	if err != nil {
		if !errors.Is(err, password.ErrPasswordTooLong) && !errors.Is(err, password.ErrEmptyPassword) {
			p.logger.WarnContext(ctx, "stored password hash unreadable", "uid", uid, "error", err)
		}
		return authflow.SessionState{}, invalidCredential()
	}
	if !ok {
		return authflow.SessionState{}, invalidCredential()
	}

	p.maybeUpgradeHash(ctx, email, uid, hash, creds.Password)
	return p.startSession(ctx, uid, email)
}

// CurrentSession returns the cached user. It never touches Redis, so the answer
// may lag a revocation made elsewhere.
func (p *Provider) CurrentSession(ctx context.Context) authflow.SessionState {
	claims, ok := p.cachedClaims(ctx)
	if !ok {
		return authflow.SessionState{}
	}
	return authflow.SessionState{
		Authenticated: true,
		UserEmail:     claims.Email,
		UserID:        claims.UID,
	}
}

// VerifySession is CurrentSession backed by a Redis lookup of the session record.
// A revoked or expired record clears the cache and reports signed out.
func (p *Provider) VerifySession(ctx context.Context) (authflow.SessionState, error) {
	claims, ok := p.cachedClaims(ctx)
	if !ok {
		return authflow.SessionState{}, nil
	}

	sess, err := p.sessions.Get(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrCorruptSession) {
			if clearErr := p.cache.Clear(); clearErr != nil {
				p.logger.WarnContext(ctx, "token cache clear failed", "error", clearErr)
			}
			return authflow.SessionState{}, nil
		}
		return authflow.SessionState{}, unavailable(err)
	}
	if sess.UserID != claims.UID {
		return authflow.SessionState{}, nil
	}

	return authflow.SessionState{
		Authenticated: true,
		UserEmail:     sess.Email,
		UserID:        sess.UserID,
	}, nil
}

// ActiveSessions returns how many live session records uid has.
func (p *Provider) ActiveSessions(ctx context.Context, uid string) (int, error) {
	n, err := p.sessions.ActiveSessionCount(ctx, uid)
	if err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}

// SignOutEverywhere deletes every session record of the current user and clears
// the cache.
func (p *Provider) SignOutEverywhere(ctx context.Context) error {
	claims, ok := p.cachedClaims(ctx)
	if err := p.cache.Clear(); err != nil {
		p.logger.WarnContext(ctx, "token cache clear failed", "error", err)
	}
	if !ok {
		return nil
	}
	if err := p.sessions.DeleteAllForUser(ctx, claims.UID); err != nil {
		return unavailable(err)
	}
	return nil
}

// SignOutRemote clears the current user and deletes its session record in the
// background. Failures are logged, never returned.
func (p *Provider) SignOutRemote(ctx context.Context) {
	claims, ok := p.cachedClaims(ctx)
	if err := p.cache.Clear(); err != nil {
		p.logger.WarnContext(ctx, "token cache clear failed", "error", err)
	}
	if !ok {
		return
	}

	sid := claims.SID
	bg := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		delCtx, cancel := context.WithTimeout(bg, p.config.SignOutTimeout)
		defer cancel()
		if err := p.sessions.Delete(delCtx, sid); err != nil {
			p.logger.WarnContext(delCtx, "session delete failed", "error", err)
		}
	}()
}

func (p *Provider) startSession(ctx context.Context, uid, email string) (authflow.SessionState, error) {
	sid, err := internal.NewSessionID()
	if err != nil {
		p.logger.ErrorContext(ctx, "session id generation failed", "error", err)
		return authflow.SessionState{}, authflow.NewAuthError(MsgInternalError, authflow.ErrProviderUnavailable)
	}

	token, expiresAt, err := p.tokens.CreateIDToken(uid, email, sid)
	if err != nil {
		p.logger.ErrorContext(ctx, "token issue failed", "error", err)
		return authflow.SessionState{}, authflow.NewAuthError(MsgInternalError, authflow.ErrProviderUnavailable)
	}

	now := p.now()
	sess := &session.Session{
		SessionID: sid,
		UserID:    uid,
		Email:     email,
		CreatedAt: now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	if err := p.sessions.Save(ctx, sess, p.config.SessionTTL); err != nil {
		p.logger.ErrorContext(ctx, "session save failed", "uid", uid, "error", err)
		return authflow.SessionState{}, unavailable(err)
	}

	if err := p.cache.Store(token); err != nil {
		p.logger.ErrorContext(ctx, "token cache store failed", "error", err)
		p.discardSession(ctx, sid)
		return authflow.SessionState{}, authflow.NewAuthError(MsgInternalError, authflow.ErrProviderUnavailable)
	}

	return authflow.SessionState{
		Authenticated: true,
		UserEmail:     email,
		UserID:        uid,
	}, nil
}

func (p *Provider) discardSession(ctx context.Context, sid string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.config.SignOutTimeout)
	defer cancel()

	if err := p.sessions.Delete(cleanupCtx, sid); err != nil {
		p.logger.WarnContext(ctx, "session rollback failed", "error", err)
	}
}

func (p *Provider) cachedClaims(ctx context.Context) (*jwt.IDClaims, bool) {
	token, err := p.cache.Load()
	if err != nil {
		p.logger.WarnContext(ctx, "token cache load failed", "error", err)
		return nil, false
	}
	if token == "" {
		return nil, false
	}

	claims, err := p.tokens.ParseIDToken(token)
	if err != nil {
		p.logger.DebugContext(ctx, "cached token rejected", "error", err)
		return nil, false
	}
	if !internal.ValidSessionID(claims.SID) {
		p.logger.DebugContext(ctx, "cached token rejected", "error", internal.ErrInvalidSessionID)
		return nil, false
	}
	return claims, true
}

func (p *Provider) maybeUpgradeHash(ctx context.Context, email, uid, hash, plain string) {
	upgrade, err := p.hasher.NeedsUpgrade(hash)
	if err != nil || !upgrade {
		return
	}
	next, err := p.hasher.Hash(plain)
	if err != nil {
		p.logger.WarnContext(ctx, "password rehash failed", "uid", uid, "error", err)
		return
	}
	if err := p.redis.HSet(ctx, p.accountKey(email), fieldHash, next).Err(); err != nil {
		p.logger.WarnContext(ctx, "password rehash store failed", "uid", uid, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredential() error {
	return authflow.NewAuthError(MsgInvalidCredential, authflow.ErrInvalidCredentials)
}

func unavailable(err error) error {
	return authflow.NewAuthError(MsgInternalError, fmt.Errorf("%w: %v", authflow.ErrProviderUnavailable, err))
}
