package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	carthttp "github.com/dwikikusuma/storefront/internal/cart/httpapi"
	cartmemory "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	cartredis "github.com/dwikikusuma/storefront/internal/cart/infra/redis"
	cartsqlite "github.com/dwikikusuma/storefront/internal/cart/infra/sqlite"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/storefront/internal/catalog/httpapi"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/yamlfile"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	checkouthttp "github.com/dwikikusuma/storefront/internal/checkout/httpapi"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"

	"github.com/dwikikusuma/storefront/internal/platform/metrics"
	"github.com/dwikikusuma/storefront/internal/session"
	httptransport "github.com/dwikikusuma/storefront/internal/transport/http"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/money"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/redis"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"github.com/dwikikusuma/storefront/pkg/sqlite"
)

// slotStorage is what every cart backend offers.
type slotStorage interface {
	cartapp.SlotStorage
	httptransport.Pinger
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	res := &resources{cfg: cfg}
	defer res.Close()

	storage, err := res.slotStorage(ctx, log)
	if err != nil {
		log.Error("storage open failed", slog.String("backend", cfg.Store.Backend), slog.Any("err", err))
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	fmtr := money.NewFormatter(cfg.Messaging.Currency)

	// Catalog
	src, err := res.productSource(ctx)
	if err != nil {
		log.Error("catalog source failed", slog.String("source", cfg.Catalog.Source), slog.Any("err", err))
		os.Exit(1)
	}
	catalogSvc, err := catalogapp.NewService(ctx, src, cfg.Catalog.PageSize)
	if err != nil {
		log.Error("catalog load failed", slog.String("source", cfg.Catalog.Source), slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("catalog loaded", slog.Int("products", len(catalogSvc.Products())))

	// Sessions (cart + filter per visitor)
	sessions := session.NewRegistry(storage, catalogSvc, cfg.Store.SlotKey, cfg.Session.IdleTTL,
		session.WithLogger(log),
		session.WithMetrics(m),
	)

	// Checkout (adapters)
	tmpl := cartapp.MessageTemplate{BusinessName: cfg.Messaging.BusinessName, Money: fmtr}
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewSessionCart(sessions, tmpl),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		tmpl,
		checkoutdomain.Recipient{Host: cfg.Messaging.Host, ID: cfg.Messaging.Recipient},
		checkoutapp.WithLogger(log),
		checkoutapp.WithMetrics(m),
	)

	handler := httptransport.NewRouter(httptransport.Deps{
		Log:        log,
		Sessions:   sessions,
		CookieName: cfg.Session.CookieName,
		Gatherer:   reg,
		Ready:      storage,
		Servers: []httptransport.Registrar{
			carthttp.NewServer(catalogSvc, fmtr, log),
			cataloghttp.NewServer(catalogSvc, fmtr, log, m),
			checkouthttp.NewServer(checkoutSvc, fmtr, log),
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr), slog.String("backend", cfg.Store.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sessions.RunSweeper(gctx, cfg.Session.SweepInterval)
	})
	g.Go(func() error {
		return shutdown.Graceful(gctx, 10*time.Second, func(stopCtx context.Context) error {
			log.Info("shutdown requested")
			return server.Shutdown(stopCtx)
		})
	})

	if err := g.Wait(); err != nil {
		log.Error("storefront stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

// resources owns the connections main opens so they close together.
type resources struct {
	cfg     config.Config
	pg      *sql.DB
	closers []func() error
}

func (r *resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i]()
	}
}

func (r *resources) postgres(ctx context.Context) (*sql.DB, error) {
	if r.pg != nil {
		return r.pg, nil
	}
	pc := r.cfg.Postgres
	db, err := postgres.Open(ctx, postgres.Config{Host: pc.Host, Port: pc.Port, User: pc.User, Pass: pc.Pass, DB: pc.DB}.DSN())
	if err != nil {
		return nil, err
	}
	r.pg = db
	r.closers = append(r.closers, db.Close)
	return db, nil
}

func (r *resources) slotStorage(ctx context.Context, log *slog.Logger) (slotStorage, error) {
	sc := r.cfg.Store
	switch sc.Backend {
	case config.BackendMemory:
		log.Warn("cart storage is in memory; carts are lost on restart")
		return cartmemory.NewSlotStore(), nil

	case config.BackendRedis:
		client, err := redis.Open(ctx, redis.Config{URL: sc.RedisURL})
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, client.Close)
		return cartredis.NewSlotStore(client, cartredis.WithTTL(sc.RedisTTL)), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(sc.SQLitePath)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, db.Close)
		store, err := cartsqlite.NewSlotStore(ctx, db)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendPostgres:
		db, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}
		store, err := cartpg.NewSlotStore(ctx, db)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
}

func (r *resources) productSource(ctx context.Context) (catalogapp.ProductSource, error) {
	switch r.cfg.Catalog.Source {
	case config.CatalogYAML:
		return yamlfile.NewFileSource(r.cfg.Catalog.File), nil
	case config.CatalogPostgres:
		db, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}
		repo, err := catalogpg.NewProductRepo(ctx, db)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", r.cfg.Catalog.Source)
	}
}
