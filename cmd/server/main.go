// cmd/server/main.go

// @title Job Funnel API
// @version 1.0
// @description Tracks job applications through the hiring pipeline and reports funnel metrics.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"job-funnel-service/internal/auth"
	"job-funnel-service/internal/config"
	"job-funnel-service/internal/funnel"
	"job-funnel-service/internal/logging"
	"job-funnel-service/internal/repository/postgresql"
	"job-funnel-service/internal/service"
	httptransport "job-funnel-service/internal/transport/http"
)

const (
	dbWaitInterval  = time.Second
	shutdownTimeout = 10 * time.Second
	revokedPrefix   = "sessions:revoked:"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log := logging.New(os.Stdout, cfg.LogLevel)

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	log.Info(ctx, "starting",
		"http_addr", cfg.HTTPAddr,
		"postgres_dsn", config.RedactDSN(cfg.DatabaseDSN),
		"redis_addr", cfg.RedisAddr,
		"google_oauth", cfg.GoogleEnabled(),
		"dev_header", cfg.AllowDevHeader,
	)

	// Postgres
	pool, err := postgresql.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("pg: %w", err)
	}
	defer pool.Close()

	if err := postgresql.WaitForDB(ctx, pool, cfg.DBWaitTimeout, dbWaitInterval); err != nil {
		return err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	err = postgresql.Migrate(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	stages, err := postgresql.NewStageRepository(pool).List(ctx)
	if err != nil {
		return err
	}
	catalog, err := funnel.NewCatalog(stages)
	if err != nil {
		return fmt.Errorf("stage catalog: %w", err)
	}

	// Redis (без него отозванные сессии живут в памяти процесса)
	var revoked auth.RevocationStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		revoked = auth.NewRedisRevocationStore(rdb, revokedPrefix)
	} else {
		log.Warn(ctx, "REDIS_ADDR not set, session revocation is per-process")
		revoked = auth.NewMemoryRevocationStore()
	}

	// DI
	jobRepo := postgresql.NewJobRepository(pool)
	tx := postgresql.NewTransactor(pool)

	userSvc := service.NewUserService(postgresql.NewUserRepository(pool), tx, log)
	jobSvc := service.NewJobService(jobRepo, tx, catalog, log, nil)
	funnelSvc := service.NewFunnelService(jobRepo, catalog)

	boundary := auth.NewBoundary(
		auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL),
		revoked,
		userSvc,
		cfg.AllowDevHeader,
	)

	var oauth httptransport.OAuthProvider
	if cfg.GoogleEnabled() {
		oauth = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}

	h := httptransport.NewHandler(httptransport.Deps{
		Jobs:           jobSvc,
		Users:          userSvc,
		Funnel:         funnelSvc,
		Boundary:       boundary,
		OAuth:          oauth,
		Log:            log,
		FrontendOrigin: cfg.FrontendOrigin,
		CookieSecure:   cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httptransport.Routes(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", "addr", cfg.HTTPAddr, "stages", len(stages))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info(context.Background(), "server stopped")
	return nil
}
