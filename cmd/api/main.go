// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/contact"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/infrastructure/database/relational"
	kafkapub "github.com/your-org/storefront/internal/infrastructure/messaging/kafka"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/pkg/session"
	"go.uber.org/multierr"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg)
	logr.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"store":       cfg.Store.Driver,
	}).Info("Starting storefront")

	// Connect to the persistent store
	store, limiter, err := openStore(cfg, logr)
	if err != nil {
		logr.WithError(err).Fatal("Failed to open store")
	}

	healthCtx, cancelHealth := context.WithTimeout(context.Background(), 5*time.Second)
	err = store.Health(healthCtx)
	cancelHealth()
	if err != nil {
		logr.WithError(err).Fatal("Store health check failed")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	bus := events.NewBus()
	bus.Subscribe(events.All, func(e events.Event) {
		collector.IncStateEvent(string(e.Topic))
	})

	var producer *kafkapub.Producer
	if cfg.KafkaEnabled() {
		producer = kafkapub.NewProducer(kafkapub.NewWriter(cfg, logr), cfg.Kafka.Topic, logr)
		producer.Attach(bus)
		logr.WithField("brokers", cfg.Kafka.Brokers).Info("Publishing order and wallet events to Kafka")
	}

	// Catalog is loaded before anything is served
	source := catalog.NewSource(cfg.Catalog.LoadTimeout)
	products := catalog.NewCache(source, cfg.Catalog.ProductsSource, catalog.NewDeriver(cfg.Catalog.DerivedMode, cfg.Catalog.Seed), logr)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Catalog.LoadTimeout)
	if err := products.Load(loadCtx); err != nil {
		logr.WithError(err).Warn("Serving without a catalog")
	}
	cancelLoad()

	locker := storage.NewLocker()
	cartRepo := cart.NewRepository(store, logr)
	wishlistRepo := wishlist.NewRepository(store, logr)
	walletRepo := wallet.NewRepository(store, logr)
	userRepo := user.NewRepository(store, logr)

	var invoices order.InvoiceRenderer
	if cfg.Invoice.Enabled {
		invoices = pdf.NewService(cfg)
	}

	services := routes.Services{
		Catalog:  products,
		Cart:     cart.NewService(cartRepo, locker, bus, products, logr),
		Wishlist: wishlist.NewService(wishlistRepo, cartRepo, store, locker, bus, products, logr),
		Wallet:   wallet.NewService(walletRepo, locker, bus, collector, logr),
		Users:    user.NewService(userRepo, locker, bus, logr),
		Contact:  contact.NewService(store, locker, bus, logr),
		Orders: order.NewService(order.Deps{
			Orders:         order.NewRepository(store, logr),
			Carts:          cartRepo,
			Users:          userRepo,
			Wallets:        walletRepo,
			Store:          store,
			Locker:         locker,
			Bus:            bus,
			Observer:       collector,
			Invoices:       invoices,
			PaymentMethods: cfg.Checkout.PaymentMethods,
			Logger:         logr,
		}),
		Bus:      bus,
		Sessions: session.NewManager(cfg),
		Seeder:   user.NewSeeder(source, cfg.Catalog.UsersSource, store, locker, logr),
	}

	// Create and start HTTP server
	server := http.NewServer(cfg, http.Dependencies{
		Logger:   logr,
		Services: services,
		Store:    store,
		Limiter:  limiter,
		Metrics:  collector,
		Gatherer: reg,
	})

	go func() {
		if err := server.Start(); err != nil {
			logr.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("Shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = server.Stop(ctx)
	if producer != nil {
		err = multierr.Append(err, producer.Close())
	}
	err = multierr.Append(err, store.Close())
	if err != nil {
		logr.WithError(err).Error("Shutdown completed with errors")
		os.Exit(1)
	}

	logr.Info("Server shutdown completed")
}

// openStore connects the configured backend. Redis deployments also share
// rate limit counters through Redis.
func openStore(cfg *config.Config, logr *logrus.Logger) (storage.Store, middleware.Limiter, error) {
	switch cfg.Store.Driver {
	case "memory":
		return storage.NewMemory(), nil, nil

	case "redis":
		client, err := redis.NewConnection(cfg, logr)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewStore(client, cfg.Store.KeyPrefix, cfg.Store.TTL),
			middleware.NewRedisLimiter(client.GetClient(), cfg.Store.KeyPrefix), nil

	case "postgres", "sqlite":
		db, err := relational.Open(cfg, logr)
		if err != nil {
			return nil, nil, err
		}
		store := relational.NewStore(db)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := store.Migrate(ctx); err != nil {
			return nil, nil, multierr.Append(fmt.Errorf("migrate store: %w", err), store.Close())
		}
		return store, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
