// Package pipeline implements the classification-and-extraction pipeline:
// filtering raw submissions, resolving halls, extracting media assets,
// expanding album links, and aggregating per-hall results.
package pipeline

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/dormdex/dormdex-server/internal/domain"
	"github.com/dormdex/dormdex-server/internal/imgur"
)

// AlbumResolver expands an album hash into its images. Implemented by
// the imgur client; stubbed in tests.
type AlbumResolver interface {
	AlbumImages(ctx context.Context, hash string) ([]imgur.AlbumImage, error)
}

// Extractor turns one submission into its normalized assets.
type Extractor struct {
	albums AlbumResolver
	logger *slog.Logger
}

// NewExtractor creates an extractor using the given album resolver.
func NewExtractor(albums AlbumResolver, logger *slog.Logger) *Extractor {
	return &Extractor{
		albums: albums,
		logger: logger,
	}
}

// Extract produces the submission's assets: each known media shape
// contributes independently, album links are expanded in place, and the
// result is deduplicated by URL. A submission with no media fields
// yields an empty slice.
func (e *Extractor) Extract(ctx context.Context, sub domain.Submission) []domain.Asset {
	assets := collect(sub)
	assets = e.resolveAlbums(ctx, assets)
	return Dedupe(assets)
}

// collect probes the submission for each media shape, in fixed order.
// The shapes are additive: a native-video post also contributes its
// preview frames as image assets.
func collect(sub domain.Submission) []domain.Asset {
	var assets []domain.Asset

	// Native video, with the first preview frame as its thumbnail.
	if sub.Media != nil && sub.Media.RedditVideo != nil {
		asset := domain.Asset{
			URL:     sub.Media.RedditVideo.FallbackURL,
			Caption: sub.Title,
			Author:  sub.AuthorFullname,
		}
		if sub.Preview != nil && len(sub.Preview.Images) > 0 {
			source := sub.Preview.Images[0].Source
			asset.Thumbnail = source.URL
			asset.Width = source.Width
			asset.Height = source.Height
		}
		assets = append(assets, asset)
	}

	// Preview images as standalone assets.
	if sub.Preview != nil {
		for _, image := range sub.Preview.Images {
			assets = append(assets, domain.Asset{
				URL:       image.Source.URL,
				Thumbnail: image.Source.URL,
				Width:     image.Source.Width,
				Height:    image.Source.Height,
				Author:    sub.AuthorFullname,
			})
		}
	}

	// Gallery metadata entries, keyed by item id. Keys are sorted so
	// extraction order is deterministic.
	for _, key := range slices.Sorted(maps.Keys(sub.MediaMetadata)) {
		entry := sub.MediaMetadata[key]
		assets = append(assets, domain.Asset{
			URL:       entry.S.URL,
			Thumbnail: entry.S.URL,
			Width:     entry.S.Width,
			Height:    entry.S.Height,
			Author:    sub.AuthorFullname,
		})
	}

	// Rich embed: emitted once whether it lives on media or secure_media.
	if embed := firstEmbed(sub); embed != nil {
		assets = append(assets, domain.Asset{
			URL:       embed.URL,
			Thumbnail: embed.ThumbnailURL,
			Width:     embed.ThumbnailWidth,
			Height:    embed.ThumbnailHeight,
			Author:    sub.AuthorFullname,
		})
	}

	return assets
}

// firstEmbed returns the submission's oembed payload from whichever
// media container carries one.
func firstEmbed(sub domain.Submission) *domain.OEmbed {
	if sub.Media != nil && sub.Media.OEmbed != nil {
		return sub.Media.OEmbed
	}
	if sub.SecureMedia != nil && sub.SecureMedia.OEmbed != nil {
		return sub.SecureMedia.OEmbed
	}
	return nil
}

// resolveAlbums replaces each album-link asset with the album's images,
// preserving relative order. A failed album lookup drops that album's
// contribution entirely; other assets are unaffected.
func (e *Extractor) resolveAlbums(ctx context.Context, assets []domain.Asset) []domain.Asset {
	resolved := make([]domain.Asset, 0, len(assets))

	for _, asset := range assets {
		hash, ok := imgur.ParseAlbumURL(asset.URL)
		if !ok {
			resolved = append(resolved, asset)
			continue
		}

		images, err := e.albums.AlbumImages(ctx, hash)
		if err != nil {
			e.logger.Warn("album expansion failed, dropping album",
				"hash", hash,
				"url", asset.URL,
				"error", err,
			)
			continue
		}

		for _, image := range images {
			resolved = append(resolved, domain.Asset{
				URL:       image.Link,
				Caption:   asset.Caption,
				Thumbnail: image.Link,
				Width:     image.Width,
				Height:    image.Height,
				Author:    asset.Author,
			})
		}
	}

	return resolved
}
