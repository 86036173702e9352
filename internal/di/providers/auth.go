package providers

import (
	"github.com/samber/do/v2"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/config"
	"github.com/alexandriaapp/alexandria-server/internal/logger"
	"github.com/alexandriaapp/alexandria-server/internal/ratelimit"
	"github.com/alexandriaapp/alexandria-server/internal/service"
)

// AuthKey wraps the token signing key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the token signing key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	cfg.Auth.TokenKey = key

	log.Info("Token signing key loaded")

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	authKey := do.MustInvoke[AuthKey](i)
	return auth.NewTokenService([]byte(authKey))
}

// LoginLimiterHandle wraps the login rate limiter with Shutdownable.
type LoginLimiterHandle struct {
	*ratelimit.KeyedLimiter
}

// Shutdown implements do.Shutdownable.
func (h *LoginLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideLoginLimiter provides the per-username login rate limiter.
func ProvideLoginLimiter(i do.Injector) (*LoginLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &LoginLimiterHandle{
		KeyedLimiter: ratelimit.New(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst),
	}, nil
}

// ProvideAuthService provides the auth service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	limiter := do.MustInvoke[*LoginLimiterHandle](i)
	catalog := do.MustInvoke[*Catalog](i)

	return service.NewAuthService(
		catalog.Store,
		tokens,
		limiter.KeyedLimiter,
		cfg.Auth.LoginSecret,
		catalog.Metrics,
		log.Logger,
	), nil
}
