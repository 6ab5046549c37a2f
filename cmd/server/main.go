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

	"questserver/internal/auth"
	"questserver/internal/config"
	"questserver/internal/httpapi"
	"questserver/internal/service"
	"questserver/internal/store/postgres"
	"questserver/internal/userui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	var (
		authSvc    *service.AuthService
		profileSvc *service.ProfileService
		dbPing     func(context.Context) error
	)

	if cfg.DBDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pgPool, err := postgres.Open(ctx, cfg.DBDSN)
		if err == nil {
			err = postgres.Migrate(ctx, pgPool)
		}
		cancel()
		if err != nil {
			logger.Error("db setup failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		accounts := postgres.NewAccountsStore(pgPool)
		profiles := postgres.NewProfilesStore(pgPool)
		sessions := postgres.NewSessionsStore(pgPool)

		authSvc = &service.AuthService{
			Accounts:            accounts,
			Sessions:            sessions,
			Profiles:            profiles,
			SessionTTL:          cfg.SessionTTL,
			GoogleClientID:      cfg.GoogleClientID,
			AppleServiceID:      cfg.AppleServiceID,
			VerifyGoogleIDToken: auth.VerifyGoogleIDToken,
			VerifyAppleIDToken:  auth.VerifyAppleIDToken,
		}
		profileSvc = &service.ProfileService{
			Profiles: profiles,
			Accounts: accounts,
			Sessions: sessions,
		}
		dbPing = pgPool.Ping
	} else {
		logger.Warn("QUEST_DB_DSN not set; accounts and profiles are disabled")
	}

	codec := auth.NewCookieCodec([]byte(cfg.CookieSecret))

	app := userui.New(userui.Opts{
		Logger:       logger,
		Auth:         authSvc,
		Profiles:     profileSvc,
		CookieCodec:  codec,
		CookieSecure: cfg.CookieSecure(),
		SessionTTL:   cfg.SessionTTL,
		FormTTL:      cfg.FormTTL,
		SiteName:     cfg.SiteName,
	})

	handler := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:       logger,
		IsProd:       cfg.IsProd(),
		DBPing:       dbPing,
		Auth:         authSvc,
		Profiles:     profileSvc,
		CookieCodec:  codec,
		CookieSecure: cfg.CookieSecure(),
		SessionTTL:   cfg.SessionTTL,
		App:          app,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr, "site", cfg.SiteName)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
