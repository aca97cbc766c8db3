package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dormdex/dormdex-server/internal/domain"
)

// Aggregator merges classified submissions into per-hall results.
type Aggregator struct {
	extractor   *Extractor
	attribution *AttributionBuilder
	logger      *slog.Logger
}

// NewAggregator creates an aggregator from the extraction and
// attribution stages.
func NewAggregator(extractor *Extractor, attribution *AttributionBuilder, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		extractor:   extractor,
		attribution: attribution,
		logger:      logger,
	}
}

// Partition groups submissions by hall in one linear pass, preserving
// input order within each hall.
func Partition(subs []domain.ClassifiedSubmission) map[domain.Hall][]domain.Submission {
	groups := make(map[domain.Hall][]domain.Submission)
	for _, sub := range subs {
		groups[sub.Hall] = append(groups[sub.Hall], sub.Submission)
	}
	return groups
}

// Aggregate builds the catalog: submissions are partitioned by hall,
// each hall's records are extracted and attributed concurrently, and
// halls that end up with no assets are dropped. Output hall order is
// the fixed enumeration order; within a hall, sources and per-record
// asset runs keep the input record order.
func (a *Aggregator) Aggregate(ctx context.Context, subs []domain.ClassifiedSubmission) domain.Catalog {
	groups := Partition(subs)

	catalog := domain.Catalog{}
	for _, hall := range domain.AllHalls() {
		records := groups[hall]
		if len(records) == 0 {
			continue
		}

		result := a.coalesce(ctx, hall, records)
		if len(result.Assets) == 0 {
			a.logger.Debug("hall has no assets, dropping",
				"hall", hall,
				"records", len(records),
			)
			continue
		}
		catalog = append(catalog, result)
	}

	return catalog
}

// coalesce fans out extraction and attribution across one hall's
// records and joins the results in record order. The per-record slots
// are pre-allocated, so the goroutines share no mutable state.
func (a *Aggregator) coalesce(ctx context.Context, hall domain.Hall, records []domain.Submission) domain.HallResult {
	perRecord := make([][]domain.Asset, len(records))
	sources := make([]domain.Attribution, len(records))

	var wg sync.WaitGroup
	for i, record := range records {
		wg.Go(func() {
			perRecord[i] = a.extractor.Extract(ctx, record)
		})
		wg.Go(func() {
			sources[i] = a.attribution.Build(ctx, record)
		})
	}
	wg.Wait()

	var assets []domain.Asset
	for _, run := range perRecord {
		assets = append(assets, run...)
	}

	a.logger.Debug("hall coalesced",
		"hall", hall,
		"records", len(records),
		"assets", len(assets),
	)

	return domain.HallResult{
		Hall:    hall,
		Assets:  assets,
		Sources: sources,
	}
}
