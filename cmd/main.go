package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okian/prode/internal/adapters/http/api"
	"github.com/okian/prode/internal/adapters/repository"
	engine "github.com/okian/prode/internal/app"
	"github.com/okian/prode/internal/config"
	"github.com/okian/prode/internal/testdata"
	"github.com/okian/prode/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second

	demoSeed = 42
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		return
	}
	defer closeStore()

	eng := engine.New(
		engine.WithStore(store),
		engine.WithLogger(log),
		engine.WithPointsPerHit(cfg.PointsPerHit),
		engine.WithWorstAvgError(cfg.WorstAvgError),
		engine.WithWorstMissLimit(cfg.WorstMissLimit),
	)

	mux := http.NewServeMux()
	apiServer := api.NewServer(eng,
		api.WithMaxRankingLimit(cfg.MaxLeaderboardLimit),
		api.WithReplayStreamInterval(time.Duration(cfg.ReplayStreamIntervalMS)*time.Millisecond),
	)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// openStore selects SQLite when a database path is configured, otherwise a
// seeded in-memory store so the service is explorable out of the box.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, func(), error) {
	if cfg.DBPath != "" {
		db, err := repository.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "using sqlite store", logger.String("path", cfg.DBPath))
		return db, func() { _ = db.Close() }, nil
	}
	fixture := testdata.Generate(testdata.DefaultConfig(demoSeed))
	log.Info(ctx, "no db_path configured; using generated demo data",
		logger.Int("users", len(fixture.Users)),
		logger.Int("matches", len(fixture.Matches)),
		logger.Int("revisions", len(fixture.Revisions)))
	return fixture.Store(), func() {}, nil
}
