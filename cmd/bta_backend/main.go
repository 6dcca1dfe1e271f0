package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/sync/errgroup"

	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	"github.com/pocketfin/budget_tracker_app/internal/core/services"
	"github.com/pocketfin/budget_tracker_app/internal/handlers"
	"github.com/pocketfin/budget_tracker_app/internal/middleware"
	"github.com/pocketfin/budget_tracker_app/internal/platform/config"
	"github.com/pocketfin/budget_tracker_app/internal/repositories/database/pgsql"
	"github.com/pocketfin/budget_tracker_app/internal/repositories/database/sqlite"
	"github.com/pocketfin/budget_tracker_app/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	bus := events.NewBus()

	repos, closeStore, err := openStore(ctx, cfg, bus, logger)
	if err != nil {
		logger.Error("Failed to open entity store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	serviceContainer := services.NewServiceContainer(*repos, bus)

	if err := services.EnsureDefaultData(ctx, serviceContainer, logger); err != nil {
		logger.Error("Failed to seed default data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) == 1 && cfg.CORSAllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", cfg.DBBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// openStore connects the configured backend, applies its migrations and
// returns the wired repositories plus a close function.
func openStore(ctx context.Context, cfg *config.Config, bus *events.Bus, logger *slog.Logger) (*portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DBBackend {
	case config.BackendPgSQL:
		if err := pgsql.RunMigrations(cfg.PgSQLURL); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.PgSQLURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("PostgreSQL store ready")
		return pgsql.NewRepositoryProvider(pool, bus), func() { database.ClosePgxPool(pool) }, nil

	default:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("SQLite store ready", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db, bus), func() { db.Close() }, nil
	}
}
