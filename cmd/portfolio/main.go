package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/frontend/portfolio"
	"portfolio/infrastructure/argon"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/cache"
	"portfolio/infrastructure/config"
	"portfolio/infrastructure/flash"
	httpserver "portfolio/infrastructure/http"
	"portfolio/infrastructure/logging"
	"portfolio/infrastructure/sqlite"
)

const sessionPurgeInterval = 15 * time.Minute

func main() {
	cfg, err := config.Load(getenv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}
	slog.SetDefault(logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format))

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		fatal("open db", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		fatal("apply migrations", err)
	}

	sealer, err := argon.NewSealer(cfg.SessionSecret, nil)
	if err != nil {
		fatal("build token sealer", err)
	}
	flashes, err := flash.NewStore(cfg.SessionSecret, cfg.CookieSecure, nil)
	if err != nil {
		fatal("build flash store", err)
	}

	server := httpserver.NewServer(
		cfg.Addr,
		db,
		cache.NewSessionCache(),
		sealer,
		backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout),
		audit.NewService(db),
		flashes,
		httpserver.Settings{
			Profile:        portfolio.ProfileFromConfig(cfg.Owner),
			SiteURL:        cfg.SiteURL,
			PageSize:       cfg.PageSize,
			AdminPageSize:  cfg.AdminPageSize,
			ResumeFileName: cfg.ResumeFileName,
			SecureCookie:   cfg.CookieSecure,
		},
	)
	server.PurgeExpiredSessions(ctx, time.Now())

	if err := server.Start(); err != nil {
		fatal("start server", err)
	}
	slog.Info("portfolio listening", slog.String("addr", cfg.Addr), slog.String("backend", cfg.Backend.URL))

	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := server.Stop(); err != nil {
				slog.Error("graceful shutdown error", slog.Any("err", err))
			}
			return
		case now := <-ticker.C:
			server.PurgeExpiredSessions(ctx, now)
		}
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("err", err))
	os.Exit(1)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
