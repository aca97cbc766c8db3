package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormdex/dormdex-server/internal/domain"
	"github.com/dormdex/dormdex-server/internal/imgur"
)

// stubAlbums is a canned AlbumResolver.
type stubAlbums struct {
	images map[string][]imgur.AlbumImage
	calls  []string
}

func (s *stubAlbums) AlbumImages(_ context.Context, hash string) ([]imgur.AlbumImage, error) {
	s.calls = append(s.calls, hash)
	images, ok := s.images[hash]
	if !ok {
		return nil, errors.New("album not found")
	}
	return images, nil
}

func newTestExtractor(albums *stubAlbums) *Extractor {
	if albums == nil {
		albums = &stubAlbums{}
	}
	return NewExtractor(albums, slog.New(slog.DiscardHandler))
}

func videoSubmission() domain.Submission {
	return domain.Submission{
		Title:          "Shippee double tour",
		Author:         "husky_fan",
		AuthorFullname: "t2_xyz",
		Media: &domain.Media{
			RedditVideo: &domain.RedditVideo{FallbackURL: "https://v.redd.it/abc/DASH_720.mp4"},
		},
		Preview: &domain.Preview{
			Enabled: true,
			Images: []domain.PreviewImage{
				{Source: domain.ImageSource{URL: "https://p.example/frame.jpg", Width: 1280, Height: 720}},
			},
		},
	}
}

func TestExtract_NoMediaFields(t *testing.T) {
	e := newTestExtractor(nil)

	assets := e.Extract(context.Background(), domain.Submission{Title: "just text"})
	assert.Empty(t, assets)
}

func TestExtract_NativeVideo(t *testing.T) {
	e := newTestExtractor(nil)

	assets := e.Extract(context.Background(), videoSubmission())

	// The video itself plus its preview frame as a standalone image.
	require.Len(t, assets, 2)

	video := assets[0]
	assert.Equal(t, "https://v.redd.it/abc/DASH_720.mp4", video.URL)
	assert.Equal(t, "https://p.example/frame.jpg", video.Thumbnail)
	assert.Equal(t, 1280, video.Width)
	assert.Equal(t, 720, video.Height)
	assert.Equal(t, "Shippee double tour", video.Caption)
	assert.Equal(t, "t2_xyz", video.Author)

	frame := assets[1]
	assert.Equal(t, "https://p.example/frame.jpg", frame.URL)
	assert.Equal(t, frame.URL, frame.Thumbnail)
}

func TestExtract_NativeVideoWithoutPreview(t *testing.T) {
	e := newTestExtractor(nil)

	sub := videoSubmission()
	sub.Preview = nil

	assets := e.Extract(context.Background(), sub)
	require.Len(t, assets, 1)
	assert.Empty(t, assets[0].Thumbnail)
	assert.Zero(t, assets[0].Width)
}

func TestExtract_GalleryMetadata(t *testing.T) {
	e := newTestExtractor(nil)

	sub := domain.Submission{
		AuthorFullname: "t2_xyz",
		MediaMetadata: map[string]domain.MediaMetadataEntry{
			"zzz": {S: domain.MediaResolution{URL: "https://i.example/last.jpg", Width: 800, Height: 600}},
			"aaa": {S: domain.MediaResolution{URL: "https://i.example/first.jpg", Width: 1024, Height: 768}},
		},
	}

	assets := e.Extract(context.Background(), sub)

	// Entries are emitted in sorted key order for deterministic output.
	require.Len(t, assets, 2)
	assert.Equal(t, "https://i.example/first.jpg", assets[0].URL)
	assert.Equal(t, 1024, assets[0].Width)
	assert.Equal(t, "https://i.example/last.jpg", assets[1].URL)
}

func TestExtract_OEmbedEmittedOnce(t *testing.T) {
	e := newTestExtractor(nil)

	embed := &domain.OEmbed{
		URL:             "https://video.example/watch/123",
		ThumbnailURL:    "https://video.example/thumb/123.jpg",
		ThumbnailWidth:  480,
		ThumbnailHeight: 360,
	}

	// Both containers carry the embed; it must still be emitted once.
	sub := domain.Submission{
		AuthorFullname: "t2_xyz",
		Media:          &domain.Media{OEmbed: embed},
		SecureMedia:    &domain.Media{OEmbed: embed},
	}

	assets := e.Extract(context.Background(), sub)
	require.Len(t, assets, 1)
	assert.Equal(t, "https://video.example/watch/123", assets[0].URL)
	assert.Equal(t, "https://video.example/thumb/123.jpg", assets[0].Thumbnail)
	assert.Equal(t, 480, assets[0].Width)
}

func TestExtract_OEmbedSecureMediaOnly(t *testing.T) {
	e := newTestExtractor(nil)

	sub := domain.Submission{
		SecureMedia: &domain.Media{OEmbed: &domain.OEmbed{URL: "https://video.example/watch/456"}},
	}

	assets := e.Extract(context.Background(), sub)
	require.Len(t, assets, 1)
	assert.Equal(t, "https://video.example/watch/456", assets[0].URL)
}

func TestExtract_AlbumExpansion(t *testing.T) {
	albums := &stubAlbums{
		images: map[string][]imgur.AlbumImage{
			"aBcD123": {
				{Link: "https://i.imgur.com/one.jpg", Width: 800, Height: 600},
				{Link: "https://i.imgur.com/two.jpg", Width: 1024, Height: 768},
			},
		},
	}
	e := newTestExtractor(albums)

	sub := domain.Submission{
		Title:          "Towers room",
		AuthorFullname: "t2_xyz",
		Preview: &domain.Preview{
			Images: []domain.PreviewImage{
				{Source: domain.ImageSource{URL: "https://imgur.com/a/aBcD123", Width: 1, Height: 1}},
			},
		},
	}

	assets := e.Extract(context.Background(), sub)

	// The album asset itself is replaced, not retained.
	require.Len(t, assets, 2)
	assert.Equal(t, "https://i.imgur.com/one.jpg", assets[0].URL)
	assert.Equal(t, "https://i.imgur.com/two.jpg", assets[1].URL)

	// Expanded images carry the original asset's author.
	assert.Equal(t, "t2_xyz", assets[0].Author)
	assert.Equal(t, 800, assets[0].Width)

	assert.Equal(t, []string{"aBcD123"}, albums.calls)
}

func TestExtract_SingleImageAlbumStaysSequence(t *testing.T) {
	albums := &stubAlbums{
		images: map[string][]imgur.AlbumImage{
			"solo": {{Link: "https://i.imgur.com/only.jpg", Width: 640, Height: 480}},
		},
	}
	e := newTestExtractor(albums)

	sub := domain.Submission{
		Preview: &domain.Preview{
			Images: []domain.PreviewImage{
				{Source: domain.ImageSource{URL: "https://imgur.com/a/solo"}},
			},
		},
	}

	assets := e.Extract(context.Background(), sub)
	require.Len(t, assets, 1)
	assert.Equal(t, "https://i.imgur.com/only.jpg", assets[0].URL)
}

func TestExtract_AlbumFailureDropsContribution(t *testing.T) {
	albums := &stubAlbums{} // every lookup fails
	e := newTestExtractor(albums)

	sub := domain.Submission{
		Preview: &domain.Preview{
			Images: []domain.PreviewImage{
				{Source: domain.ImageSource{URL: "https://imgur.com/a/broken"}},
				{Source: domain.ImageSource{URL: "https://i.example/keep.jpg", Width: 10, Height: 10}},
			},
		},
	}

	assets := e.Extract(context.Background(), sub)

	// The failed album contributes nothing; the plain image survives.
	require.Len(t, assets, 1)
	assert.Equal(t, "https://i.example/keep.jpg", assets[0].URL)
}

func TestExtract_NonAlbumURLSkipsLookup(t *testing.T) {
	albums := &stubAlbums{}
	e := newTestExtractor(albums)

	sub := domain.Submission{
		Preview: &domain.Preview{
			Images: []domain.PreviewImage{
				{Source: domain.ImageSource{URL: "https://i.imgur.com/direct.jpg"}},
			},
		},
	}

	assets := e.Extract(context.Background(), sub)
	require.Len(t, assets, 1)
	assert.Empty(t, albums.calls)
}

func TestExtract_DuplicateURLsCollapsed(t *testing.T) {
	e := newTestExtractor(nil)

	// Gallery entry duplicates a preview image URL.
	sub := domain.Submission{
		Preview: &domain.Preview{
			Images: []domain.PreviewImage{
				{Source: domain.ImageSource{URL: "https://i.example/dup.jpg", Width: 100, Height: 100}},
			},
		},
		MediaMetadata: map[string]domain.MediaMetadataEntry{
			"m1": {S: domain.MediaResolution{URL: "https://i.example/dup.jpg", Width: 999, Height: 999}},
		},
	}

	assets := e.Extract(context.Background(), sub)

	// First occurrence wins, differing dimensions notwithstanding.
	require.Len(t, assets, 1)
	assert.Equal(t, 100, assets[0].Width)
}
