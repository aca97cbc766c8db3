// Package main provides the parser: it turns the stored raw snapshot
// into the per-hall catalog, persists it, and writes the catalog JSON
// artifact.
//
// Usage:
//
//	IMGUR_CLIENT_ID=... go run ./cmd/parse --target UConnDorms
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"encoding/json/jsontext"
	"encoding/json/v2"

	"github.com/dormdex/dormdex-server/internal/config"
	"github.com/dormdex/dormdex-server/internal/imgur"
	"github.com/dormdex/dormdex-server/internal/logger"
	"github.com/dormdex/dormdex-server/internal/pipeline"
	"github.com/dormdex/dormdex-server/internal/reddit"
	"github.com/dormdex/dormdex-server/internal/store"
)

var (
	target   = flag.String("target", "", "Subreddit to parse (default from TARGET env)")
	dataPath = flag.String("data", "", "Data directory (default from DATA_PATH env)")
	logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error")
	envFile  = flag.String("env-file", "", "Path to .env file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(config.Flags{
		Subreddit: *target,
		DataPath:  *dataPath,
		LogLevel:  *logLevel,
		EnvFile:   *envFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	st, err := store.New(cfg.DatabasePath(), log.Logger)
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}
	defer st.Close()

	// Avatar lookups are unauthenticated; album expansion needs the
	// Imgur client ID or every album drops out of the catalog.
	redditClient := reddit.New(reddit.Credentials{}, cfg.Source.UserAgent, log.Logger)
	imgurClient := imgur.New(cfg.Imgur.ClientID, log.Logger)

	extractor := pipeline.NewExtractor(imgurClient, log.Logger)
	attribution := pipeline.NewAttributionBuilder(redditClient, log.Logger)
	aggregator := pipeline.NewAggregator(extractor, attribution, log.Logger)
	p := pipeline.New(aggregator, st, log.Logger)

	ctx := context.Background()
	start := time.Now()

	rec, err := p.Run(ctx, cfg.Source.Subreddit)
	if err != nil {
		log.Fatal("Parse failed", "error", err)
	}

	if err := writeCatalogExport(cfg.ExportPath(), rec); err != nil {
		log.Fatal("Failed to write catalog export", "error", err)
	}

	log.Info("Catalog written",
		"path", cfg.ExportPath(),
		"halls", len(rec.Catalog),
		"assets", rec.Catalog.AssetCount(),
		"elapsed", time.Since(start),
	)
}

func writeCatalogExport(path string, rec *store.CatalogRecord) error {
	f, err := os.Create(path) //#nosec G304 -- export path derives from user config
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.MarshalWrite(f, rec, jsontext.WithIndent("  ")); err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return f.Close()
}
