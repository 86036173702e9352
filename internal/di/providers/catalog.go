package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/alexandriaapp/alexandria-server/internal/config"
	"github.com/alexandriaapp/alexandria-server/internal/logger"
	"github.com/alexandriaapp/alexandria-server/internal/metrics"
	"github.com/alexandriaapp/alexandria-server/internal/pubsub"
	"github.com/alexandriaapp/alexandria-server/internal/service"
	"github.com/alexandriaapp/alexandria-server/internal/store"
)

// Catalog bundles the store with the metric collector so providers that
// need both resolve one dependency.
type Catalog struct {
	Store    *store.Store
	Registry *prometheus.Registry
	Metrics  *metrics.Collector
}

// ProvideCatalog provides the in-memory store and the metric collector.
func ProvideCatalog(i do.Injector) (*Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	registry := prometheus.NewRegistry()

	s := store.New(log.Logger)
	if cfg.Catalog.Seed {
		s.Seed()
	}

	return &Catalog{
		Store:    s,
		Registry: registry,
		Metrics:  metrics.NewCollector(registry),
	}, nil
}

// ProvideBroker provides the book-added event broker.
func ProvideBroker(i do.Injector) (*pubsub.Broker, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return pubsub.NewBroker(log.Logger), nil
}

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	catalog := do.MustInvoke[*Catalog](i)
	broker := do.MustInvoke[*pubsub.Broker](i)

	return service.NewCatalogService(catalog.Store, broker, catalog.Metrics, log.Logger), nil
}

// ProvideUserService provides the user service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	catalog := do.MustInvoke[*Catalog](i)

	return service.NewUserService(catalog.Store, catalog.Metrics, log.Logger), nil
}
