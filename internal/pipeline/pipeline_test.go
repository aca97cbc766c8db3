package pipeline

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormdex/dormdex-server/internal/domain"
	"github.com/dormdex/dormdex-server/internal/store"
)

func newTestPipeline(t *testing.T, albums *stubAlbums, avatars *stubAvatars) (*Pipeline, *store.Store) {
	t.Helper()

	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.DiscardHandler)
	return New(newTestAggregator(albums, avatars), st, logger), st
}

func TestClassify(t *testing.T) {
	raws := []domain.RawSubmission{
		{ID: "text", LinkFlairText: "Shippee"}, // no media, skipped
		{ID: "vid", IsVideo: true, LinkFlairText: "SHIPPEE"},
		{ID: "gal", IsGallery: true, LinkFlairText: "towers"},
		{ID: "odd", IsGallery: true, LinkFlairText: "Random Hall"}, // unresolvable
	}

	classified := Classify(raws, slog.New(slog.DiscardHandler))

	require.Len(t, classified, 2)
	assert.Equal(t, "vid", classified[0].ID)
	assert.Equal(t, domain.HallShippee, classified[0].Hall)
	assert.Equal(t, "gal", classified[1].ID)
	assert.Equal(t, domain.HallTowers, classified[1].Hall)
}

func TestRun(t *testing.T) {
	p, st := newTestPipeline(t, nil, nil)
	ctx := context.Background()

	snap := &store.RawSnapshot{
		RunID:     "run_test1",
		Subreddit: "UConnDorms",
		FetchedAt: time.Now().UTC(),
		Submissions: []domain.RawSubmission{
			{
				ID:            "gal",
				IsGallery:     true,
				LinkFlairText: "Shippee",
				Author:        "husky_fan",
				MediaMetadata: map[string]domain.MediaMetadataEntry{
					"m1": {S: domain.MediaResolution{URL: "https://i.example/g1.jpg", Width: 800, Height: 600}},
				},
			},
		},
	}
	require.NoError(t, st.SaveRawSnapshot(ctx, snap))

	rec, err := p.Run(ctx, "UConnDorms")
	require.NoError(t, err)

	assert.Equal(t, "run_test1", rec.RunID)
	assert.Equal(t, "UConnDorms", rec.Subreddit)
	require.Len(t, rec.Catalog, 1)
	assert.Equal(t, domain.HallShippee, rec.Catalog[0].Hall)
	require.Len(t, rec.Catalog[0].Assets, 1)

	// The result is also persisted and readable back.
	stored, err := st.GetCatalog(ctx, "UConnDorms")
	require.NoError(t, err)
	assert.Equal(t, rec.RunID, stored.RunID)
	require.Len(t, stored.Catalog, 1)
}

func TestRun_MissingSnapshotIsFatal(t *testing.T) {
	p, _ := newTestPipeline(t, nil, nil)

	_, err := p.Run(context.Background(), "UConnDorms")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRun_ReplacesStaleHallEntries(t *testing.T) {
	p, st := newTestPipeline(t, nil, nil)
	ctx := context.Background()

	galleryFor := func(flair, url string) domain.RawSubmission {
		return domain.RawSubmission{
			ID:            "g-" + flair,
			IsGallery:     true,
			LinkFlairText: flair,
			MediaMetadata: map[string]domain.MediaMetadataEntry{
				"m1": {S: domain.MediaResolution{URL: url}},
			},
		}
	}

	first := &store.RawSnapshot{
		RunID:     "run_a",
		Subreddit: "UConnDorms",
		Submissions: []domain.RawSubmission{
			galleryFor("Shippee", "https://i.example/s.jpg"),
			galleryFor("Towers", "https://i.example/t.jpg"),
		},
	}
	require.NoError(t, st.SaveRawSnapshot(ctx, first))
	_, err := p.Run(ctx, "UConnDorms")
	require.NoError(t, err)

	// The second fetch no longer has a Towers post.
	second := &store.RawSnapshot{
		RunID:     "run_b",
		Subreddit: "UConnDorms",
		Submissions: []domain.RawSubmission{
			galleryFor("Shippee", "https://i.example/s.jpg"),
		},
	}
	require.NoError(t, st.SaveRawSnapshot(ctx, second))
	_, err = p.Run(ctx, "UConnDorms")
	require.NoError(t, err)

	stored, err := st.GetCatalog(ctx, "UConnDorms")
	require.NoError(t, err)
	require.Len(t, stored.Catalog, 1)
	assert.Equal(t, domain.HallShippee, stored.Catalog[0].Hall)

	_, err = st.GetHallResult(ctx, "UConnDorms", domain.HallTowers)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRun_EmptySnapshotStoresEmptyCatalog(t *testing.T) {
	p, st := newTestPipeline(t, nil, nil)
	ctx := context.Background()

	snap := &store.RawSnapshot{RunID: "run_empty", Subreddit: "UConnDorms"}
	require.NoError(t, st.SaveRawSnapshot(ctx, snap))

	rec, err := p.Run(ctx, "UConnDorms")
	require.NoError(t, err)
	assert.Empty(t, rec.Catalog)

	stored, err := st.GetCatalog(ctx, "UConnDorms")
	require.NoError(t, err)
	assert.Empty(t, stored.Catalog)
}
