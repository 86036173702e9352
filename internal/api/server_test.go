package api

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandriaapp/alexandria-server/internal/auth"
	"github.com/alexandriaapp/alexandria-server/internal/config"
	"github.com/alexandriaapp/alexandria-server/internal/graph"
	"github.com/alexandriaapp/alexandria-server/internal/logger"
	"github.com/alexandriaapp/alexandria-server/internal/metrics"
	"github.com/alexandriaapp/alexandria-server/internal/pubsub"
	"github.com/alexandriaapp/alexandria-server/internal/service"
	"github.com/alexandriaapp/alexandria-server/internal/store"
)

// setupRouter builds a full router over a seeded store with one registered user.
func setupRouter(t *testing.T) (http.Handler, *service.AuthService) {
	t.Helper()

	s := store.New(nil)
	s.Seed()
	_, err := s.CreateUser("mluukkai", "refactoring")
	require.NoError(t, err)

	broker := pubsub.NewBroker(nil)
	t.Cleanup(func() { _ = broker.Shutdown() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	catalogService := service.NewCatalogService(s, broker, recorder, nil)
	userService := service.NewUserService(s, recorder, nil)
	authService := service.NewAuthService(s, tokens, nil, "secret", recorder, nil)

	resolver := graph.NewResolver(catalogService, userService, authService, broker, recorder, nil)
	schema, err := graphql.ParseSchema(graph.Schema, resolver)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"*"}
	log := logger.New(logger.Config{Writer: io.Discard})

	return NewRouter(cfg, log, schema, authService, registry), authService
}

func execGraphQL(t *testing.T, router http.Handler, query, bearer string) map[string]any {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_GraphQLQuery(t *testing.T) {
	router, _ := setupRouter(t)

	resp := execGraphQL(t, router, `{ bookCount authorCount }`, "")
	assert.Nil(t, resp["errors"])
	assert.Equal(t, map[string]any{"bookCount": float64(7), "authorCount": float64(5)}, resp["data"])
}

func TestRouter_BearerTokenResolvesIdentity(t *testing.T) {
	router, authService := setupRouter(t)

	t.Run("anonymous me is null", func(t *testing.T) {
		resp := execGraphQL(t, router, `{ me { username } }`, "")
		assert.Nil(t, resp["errors"])
		assert.Equal(t, map[string]any{"me": nil}, resp["data"])
	})

	token, err := authService.Login(context.Background(), "mluukkai", "secret")
	require.NoError(t, err)

	t.Run("valid bearer resolves the user", func(t *testing.T) {
		resp := execGraphQL(t, router, `{ me { username } }`, token.Value)
		assert.Nil(t, resp["errors"])
		assert.Equal(t, map[string]any{"me": map[string]any{"username": "mluukkai"}}, resp["data"])
	})

	t.Run("garbage bearer fails open to anonymous", func(t *testing.T) {
		resp := execGraphQL(t, router, `{ me { username } }`, "v4.local.garbage")
		assert.Nil(t, resp["errors"])
		assert.Equal(t, map[string]any{"me": nil}, resp["data"])
	})
}

func TestRouter_MutationErrorCarriesExtensionsCode(t *testing.T) {
	router, _ := setupRouter(t)

	resp := execGraphQL(t, router,
		`mutation { addBook(title: "Emma", author: "Jane Austen", published: 1815, genres: []) { title } }`, "")

	respErrors, ok := resp["errors"].([]any)
	require.True(t, ok)
	require.Len(t, respErrors, 1)
	first, ok := respErrors[0].(map[string]any)
	require.True(t, ok)
	extensions, ok := first["extensions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHENTICATED", extensions["code"])
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alexandria_books_added_total")
}
