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

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"waterbuddy/internal/adapter/file"
	adapthttp "waterbuddy/internal/adapter/http"
	"waterbuddy/internal/adapter/memory"
	"waterbuddy/internal/adapter/postgres"
	"waterbuddy/internal/adapter/sqlite"
	"waterbuddy/internal/app"
	"waterbuddy/internal/config"
	"waterbuddy/internal/domain"
	"waterbuddy/internal/logger"
	"waterbuddy/internal/scheduler"
)

// stores bundles the repositories selected by STORE_DRIVER.
type stores struct {
	history  domain.HistoryRepository
	profiles domain.ProfileRepository
	users    domain.UserRepository
	sessions domain.SessionRepository
	ping     func(ctx context.Context) error
	close    func() error
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &stores{db, db, db, postgres.NewSessionRepo(db), db.Ping, db.Close}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return &stores{db, db, db, sqlite.NewSessionRepo(db), db.Ping, db.Close}, nil
	case config.DriverFile:
		fs, err := file.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("file store: %w", err)
		}
		// Accounts are not persisted by the file store.
		mem := memory.New()
		return &stores{fs, fs, mem, mem.NewSessionRepo(), nil, func() error { return nil }}, nil
	default:
		mem := memory.New()
		return &stores{mem, mem, mem, mem.NewSessionRepo(), nil, func() error { return nil }}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("waterbuddy stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store opened")

	clock := clockwork.NewRealClock()
	hydrationSvc := app.NewHydrationService(st.history, st.profiles, clock)
	historySvc := app.NewHistoryService(st.history, clock)
	authSvc := app.NewAuthService(st.users, st.sessions, clock)

	if cfg.InitialUser != "" {
		err := authSvc.CreateInitialUser(ctx, cfg.InitialUser, cfg.InitialPassword)
		switch {
		case errors.Is(err, app.ErrUsersExist):
		case err != nil:
			return fmt.Errorf("create initial user: %w", err)
		default:
			log.Info().Str("username", cfg.InitialUser).Msg("initial user created")
		}
	}

	var oidcCfg adapthttp.OIDCConfig
	if cfg.SSOEnabled() {
		oidcCfg, err = adapthttp.NewOIDCConfig(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
		if err != nil {
			return err
		}
		log.Info().Str("issuer", cfg.OIDCIssuer).Msg("sso enabled")
	}

	srv := adapthttp.New(adapthttp.Options{
		Hydration:   hydrationSvc,
		History:     historySvc,
		Auth:        authSvc,
		WebDir:      cfg.WebDir,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		OIDC:        oidcCfg,
		Ping:        st.ping,
	})
	if cfg.DisableAuth {
		local, err := authSvc.ValidateForwardAuth(ctx, "local")
		if err != nil {
			return fmt.Errorf("provision local user: %w", err)
		}
		srv = srv.WithoutAuth(local)
		log.Warn().Msg("authentication disabled")
	}

	sched := scheduler.New(log)
	if err := sched.Add("session-cleanup", cfg.SessionCleanupSchedule, scheduler.SessionCleanup(authSvc, log)); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
