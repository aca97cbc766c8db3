package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dormdex/dormdex-server/internal/domain"
	"github.com/dormdex/dormdex-server/internal/store"
)

// Pipeline runs the full parse: load the raw snapshot, classify, and
// aggregate into a stored catalog.
type Pipeline struct {
	aggregator *Aggregator
	store      *store.Store
	logger     *slog.Logger
}

// New creates a pipeline.
func New(aggregator *Aggregator, st *store.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		store:      st,
		logger:     logger,
	}
}

// Classify filters raw submissions down to media-bearing ones, projects
// them, and attaches resolved halls. Submissions with unresolvable
// flair are counted and logged, never fatal: they are upstream drift.
func Classify(raws []domain.RawSubmission, logger *slog.Logger) []domain.ClassifiedSubmission {
	classified := make([]domain.ClassifiedSubmission, 0, len(raws))
	unclassified := 0

	for _, raw := range raws {
		if !raw.HasMedia() {
			continue
		}

		sub, ok := raw.Project().Classify()
		if !ok {
			unclassified++
			logger.Warn("submission flair matches no hall",
				"id", raw.ID,
				"flair", raw.LinkFlairText,
			)
			continue
		}
		classified = append(classified, sub)
	}

	if unclassified > 0 {
		logger.Warn("unclassified submissions skipped",
			"count", unclassified,
		)
	}

	return classified
}

// Run executes the pipeline for one subreddit and persists the result.
// A missing or unreadable snapshot is fatal; nothing partial is stored.
func (p *Pipeline) Run(ctx context.Context, subreddit string) (*store.CatalogRecord, error) {
	start := time.Now()

	snap, err := p.store.GetRawSnapshot(ctx, subreddit)
	if err != nil {
		return nil, fmt.Errorf("load raw snapshot for %q: %w", subreddit, err)
	}

	classified := Classify(snap.Submissions, p.logger)
	catalog := p.aggregator.Aggregate(ctx, classified)

	rec := &store.CatalogRecord{
		RunID:     snap.RunID,
		Subreddit: subreddit,
		ParsedAt:  time.Now().UTC(),
		Catalog:   catalog,
	}

	// Clear the previous catalog first so halls that vanished from the
	// source do not linger in the hall index.
	if err := p.store.DeleteCatalog(ctx, subreddit); err != nil {
		return nil, fmt.Errorf("clear previous catalog: %w", err)
	}
	if err := p.store.SaveCatalog(ctx, rec); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}

	p.logger.Info("parse complete",
		"subreddit", subreddit,
		"records", len(classified),
		"halls", len(catalog),
		"assets", catalog.AssetCount(),
		"elapsed", time.Since(start),
	)

	return rec, nil
}
