// Package di provides dependency injection configuration for the Alexandria server.
package di

import (
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/samber/do/v2"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/config"
	"github.com/alexandriaapp/alexandria-server/internal/di/providers"
	"github.com/alexandriaapp/alexandria-server/internal/logger"
	"github.com/alexandriaapp/alexandria-server/internal/pubsub"
	"github.com/alexandriaapp/alexandria-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideBroker)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideLoginLimiter)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideAuthService)

	// API
	do.Provide(injector, providers.ProvideSchema)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.Catalog](injector)
	_ = do.MustInvoke[*pubsub.Broker](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.LoginLimiterHandle](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*graphql.Schema](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
