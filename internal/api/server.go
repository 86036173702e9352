// Package api wires the GraphQL schema and operational endpoints onto an
// HTTP router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexandriaapp/alexandria-server/internal/config"
	"github.com/alexandriaapp/alexandria-server/internal/logger"
	"github.com/alexandriaapp/alexandria-server/internal/metrics"
	"github.com/alexandriaapp/alexandria-server/internal/service"
)

// NewRouter builds the HTTP router. /graphql serves queries and mutations
// over POST and subscriptions over the graphql-ws WebSocket protocol on the
// same path.
func NewRouter(cfg *config.Config, log *logger.Logger, schema *graphql.Schema, authSvc *service.AuthService, gatherer prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(requestLogger(log))
	r.Use(resolveIdentity(authSvc))

	// Subscriptions upgrade to a WebSocket; everything else falls through
	// to the relay handler.
	graphqlHandler := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})
	r.Handle("/graphql", graphqlHandler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	return r
}
