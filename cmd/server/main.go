package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atlasborder/site/internal/checklist"
	"github.com/atlasborder/site/internal/config"
	"github.com/atlasborder/site/internal/content"
	"github.com/atlasborder/site/internal/database"
	"github.com/atlasborder/site/internal/handler/health"
	"github.com/atlasborder/site/internal/i18n"
	"github.com/atlasborder/site/internal/metrics"
	"github.com/atlasborder/site/internal/migrations"
	"github.com/atlasborder/site/internal/planner"
	"github.com/atlasborder/site/internal/server"
	"github.com/atlasborder/site/internal/session"
	"github.com/atlasborder/site/internal/store"
)

const sweepInterval = time.Minute

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Content ---
	catalog, err := content.Load()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	// --- Preference store ---
	kv, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	planners := session.NewRegistry[*planner.Wizard]()
	checklists := session.NewRegistry[*checklist.List]()

	reg := metrics.InitRegistry()
	metrics.RegisterSessions(reg, "planner", planners.Len)
	metrics.RegisterSessions(reg, "checklist", checklists.Len)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Catalog:      catalog,
		Lang:         i18n.NewProvider(kv, logger),
		Planners:     planners,
		Checklists:   checklists,
		Checks:       map[string]health.Checker{cfg.StoreBackend: kv},
		Metrics:      reg,
		SPADir:       cfg.SPADir,
		CookieSecure: cfg.CookieSecure,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		planners.Run(gctx, sweepInterval, cfg.SessionTTL)
		return nil
	})

	g.Go(func() error {
		checklists.Run(gctx, sweepInterval, cfg.SessionTTL)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// openStore connects the configured preference backend. The returned func
// releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.KV, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		if _, err := migrations.Run(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath)
		return store.NewSQLStore(db), func() { db.Close() }, nil

	case config.BackendRedis:
		rs, err := store.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("connected to redis")
		return rs, func() { rs.Close() }, nil

	default:
		logger.Warn("using in-memory preference store; preferences are lost on restart")
		return store.NewMemStore(), func() {}, nil
	}
}
