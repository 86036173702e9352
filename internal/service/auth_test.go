package service

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/errors"
	"github.com/alexandriaapp/alexandria-server/internal/ratelimit"
	"github.com/alexandriaapp/alexandria-server/internal/store"
)

const testSecret = "secret"

// setupAuthTest creates an auth service with one registered user.
func setupAuthTest(t *testing.T) (*AuthService, *auth.TokenService, *store.Store) {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(key)
	require.NoError(t, err)

	s := store.New(nil)
	_, err = s.CreateUser("mluukkai", "refactoring")
	require.NoError(t, err)

	return NewAuthService(s, tokens, nil, testSecret, nil, nil), tokens, s
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, tokens, s := setupAuthTest(t)

	token, err := svc.Login(context.Background(), "mluukkai", testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)

	// The credential decodes back to the user's {username, id}.
	claims, err := tokens.VerifyToken(token.Value)
	require.NoError(t, err)
	user, ok := s.UserByUsername("mluukkai")
	require.True(t, ok)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Login_GenericFailures(t *testing.T) {
	svc, _, _ := setupAuthTest(t)
	ctx := context.Background()

	// Wrong password and unknown username fail identically, so the error
	// cannot be used to enumerate usernames.
	_, wrongPassword := svc.Login(ctx, "mluukkai", "nope")
	require.Error(t, wrongPassword)
	assert.True(t, errors.Is(wrongPassword, errors.ErrInvalidCredentials))

	_, unknownUser := svc.Login(ctx, "nobody", testSecret)
	require.Error(t, unknownUser)
	assert.True(t, errors.Is(unknownUser, errors.ErrInvalidCredentials))

	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_Login_Throttled(t *testing.T) {
	svc, _, _ := setupAuthTest(t)
	limiter := ratelimit.New(1, 2)
	defer limiter.Stop()
	svc.limiter = limiter

	ctx := context.Background()
	_, err := svc.Login(ctx, "mluukkai", testSecret)
	require.NoError(t, err)
	_, err = svc.Login(ctx, "mluukkai", testSecret)
	require.NoError(t, err)

	// Third attempt inside the same burst window is throttled, with the
	// same generic error as a bad password.
	_, err = svc.Login(ctx, "mluukkai", testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestAuthService_ResolveIdentity(t *testing.T) {
	svc, _, s := setupAuthTest(t)
	ctx := context.Background()

	t.Run("empty token is anonymous", func(t *testing.T) {
		assert.Nil(t, svc.ResolveIdentity(ctx, ""))
	})

	t.Run("garbage token fails open to anonymous", func(t *testing.T) {
		assert.Nil(t, svc.ResolveIdentity(ctx, "v4.local.garbage"))
	})

	t.Run("valid token resolves the user", func(t *testing.T) {
		token, err := svc.Login(ctx, "mluukkai", testSecret)
		require.NoError(t, err)

		user := svc.ResolveIdentity(ctx, token.Value)
		require.NotNil(t, user)
		assert.Equal(t, "mluukkai", user.Username)
	})

	t.Run("token signed by another key is anonymous", func(t *testing.T) {
		otherKey := make([]byte, 32)
		_, err := rand.Read(otherKey)
		require.NoError(t, err)
		otherTokens, err := auth.NewTokenService(otherKey)
		require.NoError(t, err)

		user, ok := s.UserByUsername("mluukkai")
		require.True(t, ok)
		foreign, err := otherTokens.IssueToken(user)
		require.NoError(t, err)

		assert.Nil(t, svc.ResolveIdentity(ctx, foreign))
	})
}
