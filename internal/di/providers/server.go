package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/samber/do/v2"

	"github.com/alexandriaapp/alexandria-server/internal/api"
	"github.com/alexandriaapp/alexandria-server/internal/config"
	"github.com/alexandriaapp/alexandria-server/internal/graph"
	"github.com/alexandriaapp/alexandria-server/internal/logger"
	"github.com/alexandriaapp/alexandria-server/internal/pubsub"
	"github.com/alexandriaapp/alexandria-server/internal/service"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// ProvideSchema parses the GraphQL schema against the root resolver.
func ProvideSchema(i do.Injector) (*graphql.Schema, error) {
	log := do.MustInvoke[*logger.Logger](i)
	catalog := do.MustInvoke[*Catalog](i)
	broker := do.MustInvoke[*pubsub.Broker](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	userService := do.MustInvoke[*service.UserService](i)
	authService := do.MustInvoke[*service.AuthService](i)

	resolver := graph.NewResolver(
		catalogService,
		userService,
		authService,
		broker,
		catalog.Metrics,
		log.Logger,
	)

	schema, err := graphql.ParseSchema(graph.Schema, resolver)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	schema := do.MustInvoke[*graphql.Schema](i)
	authService := do.MustInvoke[*service.AuthService](i)
	catalog := do.MustInvoke[*Catalog](i)

	router := api.NewRouter(cfg, log, schema, authService, catalog.Registry)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Server ready", "addr", "http://localhost:"+cfg.Server.Port+"/graphql")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
