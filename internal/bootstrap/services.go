package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/online-shop/shopfront/config"
	"github.com/online-shop/shopfront/internal/api"
	"github.com/online-shop/shopfront/internal/observability/statsd"
	"github.com/online-shop/shopfront/internal/ports"
	"github.com/online-shop/shopfront/internal/service"
)

// ServiceDeps holds the shared dependencies for service construction.
type ServiceDeps struct {
	Config      *config.AppConfig
	Credentials ports.CredentialStore
	Logger      *slog.Logger
	Metrics     statsd.Sink
}

// Services aggregates the wired state layer. Views (or the CLI) call these;
// nothing here reaches back into a view.
type Services struct {
	API     *api.Client
	Session *service.SessionService
	Cart    *service.CartService
	Catalog *service.CatalogService
	Orders  *service.OrderService
}

// NewServices wires the API client and services with explicit dependency
// injection. The cart service subscribes to session changes during its
// construction, so the subscription exists before Bootstrap can fire the
// restored-session notification.
func NewServices(deps *ServiceDeps) (*Services, error) {
	if deps == nil || deps.Config == nil {
		return nil, fmt.Errorf("service deps with config are required")
	}
	if deps.Credentials == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	client, err := api.NewClient(api.Config{
		BaseURL:     deps.Config.Backend.URL,
		Credentials: deps.Credentials,
		Timeout:     deps.Config.Backend.Timeout,
		Logger:      deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	obs := service.Observability{
		Logger:  deps.Logger,
		Metrics: deps.Metrics,
	}

	session := service.NewSessionService(service.SessionServiceOptions{
		API:           client,
		Credentials:   deps.Credentials,
		Observability: obs,
	})
	cart := service.NewCartService(service.CartServiceOptions{
		API:           client,
		Session:       session,
		Observability: obs,
	})
	catalog := service.NewCatalogService(service.CatalogServiceOptions{
		API:           client.Products(),
		Observability: obs,
	})
	orders := service.NewOrderService(service.OrderServiceOptions{
		API:           client.Orders(),
		Session:       session,
		Observability: obs,
	})

	return &Services{
		API:     client,
		Session: session,
		Cart:    cart,
		Catalog: catalog,
		Orders:  orders,
	}, nil
}

// NewMetrics builds the StatsD sink from configuration. Disabled metrics
// yield a client that silently drops writes.
func NewMetrics(cfg config.StatsDConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Enabled,
		Address: cfg.Address,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build statsd client: %w", err)
	}
	return client, nil
}
