package api

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/dormdex/dormdex-server/internal/domain"
	"github.com/dormdex/dormdex-server/internal/store"
)

const testSubreddit = "UConnDorms"

// setupTestServer creates a server backed by a throwaway store.
func setupTestServer(t *testing.T) (*Server, humatest.TestAPI, *store.Store) {
	t.Helper()

	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.DiscardHandler)
	server := NewServer(st, testSubreddit, "test", logger)

	return server, humatest.Wrap(t, server.api), st
}

// seedCatalog stores a small two-hall catalog.
func seedCatalog(t *testing.T, st *store.Store) *store.CatalogRecord {
	t.Helper()

	rec := &store.CatalogRecord{
		RunID:     "run_api_test",
		Subreddit: testSubreddit,
		ParsedAt:  time.Now().UTC(),
		Catalog: domain.Catalog{
			{
				Hall: domain.HallShippee,
				Assets: []domain.Asset{
					{URL: "https://i.example/s1.jpg", Thumbnail: "https://i.example/s1.jpg", Width: 800, Height: 600},
					{URL: "https://i.example/s2.jpg", Thumbnail: "https://i.example/s2.jpg", Width: 800, Height: 600},
				},
				Sources: []domain.Attribution{
					{
						Author: domain.AttributionAuthor{Name: "husky_fan", ID: "t2_h"},
						Post:   domain.AttributionPost{ID: "t3_s", Created: 1700000000},
					},
				},
			},
			{
				Hall: domain.HallTowers,
				Assets: []domain.Asset{
					{URL: "https://i.example/t1.jpg", Thumbnail: "https://i.example/t1.jpg"},
				},
				Sources: []domain.Attribution{
					{
						Author: domain.AttributionAuthor{Name: "towers_fan", ID: "t2_t"},
						Post:   domain.AttributionPost{ID: "t3_t", Created: 1700000100},
					},
				},
			},
		},
	}
	require.NoError(t, st.SaveCatalog(context.Background(), rec))
	return rec
}
