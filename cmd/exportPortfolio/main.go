package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"portfolio/frontend/exports"
	"portfolio/frontend/portfolio"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/config"
	"portfolio/infrastructure/logging"
)

// exportPortfolio writes the printable portfolio without going through the
// admin dashboard. The output path is the first argument, then EXPORT_PATH.
func main() {
	cfg, err := config.Load(getenv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format))

	outPath := getenv("EXPORT_PATH", "portfolio.pdf")
	if len(os.Args) > 1 && os.Args[1] != "" {
		outPath = os.Args[1]
	}

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	doc, err := run(context.Background(), client, portfolio.ProfileFromConfig(cfg.Owner), cfg.SiteURL, outPath, time.Now())
	if err != nil {
		slog.Error("export portfolio", slog.Any("err", err))
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%d projects, %d certificates)\n", outPath, len(doc.Projects), len(doc.Certificates))
}

func run(ctx context.Context, src exports.Source, profile portfolio.Profile, siteURL, outPath string, now time.Time) (exports.Portfolio, error) {
	doc, err := exports.Collect(ctx, src, profile, siteURL, now)
	if err != nil {
		return exports.Portfolio{}, err
	}
	pdf, err := exports.RenderPortfolioPDF(doc)
	if err != nil {
		return exports.Portfolio{}, fmt.Errorf("render pdf: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exports.Portfolio{}, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return exports.Portfolio{}, fmt.Errorf("write %s: %w", outPath, err)
	}
	return doc, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
