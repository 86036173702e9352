package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/domain"
	"github.com/alexandriaapp/alexandria-server/internal/errors"
	"github.com/alexandriaapp/alexandria-server/internal/metrics"
	"github.com/alexandriaapp/alexandria-server/internal/ratelimit"
	"github.com/alexandriaapp/alexandria-server/internal/store"
)

// AuthService handles login and per-request identity resolution.
type AuthService struct {
	store   *store.Store
	tokens  *auth.TokenService
	limiter *ratelimit.KeyedLimiter
	// secret is the single shared password accepted for every user.
	// A demo credential by design; per-user credentials are out of scope.
	secret  string
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewAuthService creates a new auth service. The limiter may be nil to
// disable login throttling (tests do this).
func NewAuthService(store *store.Store, tokens *auth.TokenService, limiter *ratelimit.KeyedLimiter, secret string, recorder metrics.Recorder, logger *slog.Logger) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:   store,
		tokens:  tokens,
		limiter: limiter,
		secret:  secret,
		metrics: recorder,
		logger:  logger,
	}
}

// Login checks the shared password and issues a signed token for the user.
// Wrong password and unknown username both fail with the same generic
// invalid-credentials error so usernames cannot be enumerated. Throttled
// attempts get the same answer for the same reason.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Token, error) {
	if s.limiter != nil && !s.limiter.Allow(username) {
		s.metrics.RecordLogin(metrics.LoginOutcomeThrottled)
		s.logger.Warn("login throttled", "username", username)
		return domain.Token{}, errors.InvalidCredentials("wrong credentials")
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.secret)) != 1 {
		s.metrics.RecordLogin(metrics.LoginOutcomeRejected)
		return domain.Token{}, errors.InvalidCredentials("wrong credentials")
	}

	user, ok := s.store.UserByUsername(username)
	if !ok {
		s.metrics.RecordLogin(metrics.LoginOutcomeRejected)
		return domain.Token{}, errors.InvalidCredentials("wrong credentials")
	}

	value, err := s.tokens.IssueToken(user)
	if err != nil {
		return domain.Token{}, errors.Wrap(err, errors.CodeInternal, "issue token")
	}

	s.metrics.RecordLogin(metrics.LoginOutcomeSuccess)
	s.logger.Info("login", "user_id", user.ID, "username", user.Username)

	return domain.Token{Value: value}, nil
}

// ResolveIdentity resolves the acting identity for a bearer token.
// It fails open: an empty, malformed, or unverifiable token resolves to
// anonymous (nil) rather than an error, as does a verified token whose
// user no longer exists. Anonymous access is valid for queries.
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) *domain.User {
	if tokenString == "" {
		return nil
	}

	claims, err := s.tokens.VerifyToken(tokenString)
	if err != nil {
		s.logger.Debug("token verification failed, continuing as anonymous", "error", err)
		return nil
	}

	user, ok := s.store.UserByUsername(claims.Username)
	if !ok {
		return nil
	}
	return &user
}
