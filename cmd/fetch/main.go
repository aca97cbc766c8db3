// Package main provides the listing fetcher: it pulls every submission
// from the target subreddit and stores the result as a raw snapshot for
// later parsing.
//
// Usage:
//
//	CLIENT_ID=... CLIENT_SECRET=... REDDIT_USERNAME=... REDDIT_PASSWORD=... \
//	  go run ./cmd/fetch --target UConnDorms
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
	"github.com/dormdex/dormdex-server/internal/id"
	"github.com/dormdex/dormdex-server/internal/logger"
	"github.com/dormdex/dormdex-server/internal/reddit"
	"github.com/dormdex/dormdex-server/internal/store"
)

var (
	target    = flag.String("target", "", "Subreddit to fetch (default from TARGET env)")
	dataPath  = flag.String("data", "", "Data directory (default from DATA_PATH env)")
	pageSize  = flag.String("page-size", "", "Listing page size, 1-100")
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error")
	envFile   = flag.String("env-file", "", "Path to .env file")
	exportRaw = flag.Bool("export", false, "Also write the raw snapshot as JSON next to the database")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(config.Flags{
		Subreddit: *target,
		DataPath:  *dataPath,
		PageSize:  *pageSize,
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

	if !cfg.Reddit.HasCredentials() {
		log.Error("Reddit credentials are required for the listing fetch",
			"hint", "set CLIENT_ID, CLIENT_SECRET, REDDIT_USERNAME, REDDIT_PASSWORD")
		os.Exit(1)
	}

	st, err := store.New(cfg.DatabasePath(), log.Logger)
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}
	defer st.Close()

	client := reddit.New(reddit.Credentials{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
	}, cfg.Source.UserAgent, log.Logger)

	ctx := context.Background()
	start := time.Now()

	log.Info("Fetching listing",
		"subreddit", cfg.Source.Subreddit,
		"page_size", cfg.Source.PageSize,
	)

	subs, err := client.FetchNew(ctx, cfg.Source.Subreddit, cfg.Source.PageSize)
	if err != nil {
		log.Fatal("Listing fetch failed", "error", err)
	}

	snap := &store.RawSnapshot{
		RunID:       id.MustGenerate("run"),
		Subreddit:   cfg.Source.Subreddit,
		FetchedAt:   time.Now().UTC(),
		Submissions: subs,
	}
	if err := st.SaveRawSnapshot(ctx, snap); err != nil {
		log.Fatal("Failed to save snapshot", "error", err)
	}

	if *exportRaw {
		if err := writeRawExport(cfg.RawExportPath(), snap); err != nil {
			log.Fatal("Failed to write raw export", "error", err)
		}
		log.Info("Raw export written", "path", cfg.RawExportPath())
	}

	log.Info("Fetch complete",
		"run_id", snap.RunID,
		"submissions", len(subs),
		"elapsed", time.Since(start),
	)
}

func writeRawExport(path string, snap *store.RawSnapshot) error {
	f, err := os.Create(path) //#nosec G304 -- export path derives from user config
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.MarshalWrite(f, snap, jsontext.WithIndent("  ")); err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return f.Close()
}
