package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dormdex/dormdex-server/internal/domain"
)

// AvatarResolver looks up a user's profile image URL. Implemented by
// the reddit client; stubbed in tests.
type AvatarResolver interface {
	Avatar(ctx context.Context, username string) (string, error)
}

// AttributionBuilder builds source attribution for submissions.
type AttributionBuilder struct {
	avatars AvatarResolver
	logger  *slog.Logger
}

// NewAttributionBuilder creates a builder using the given avatar resolver.
func NewAttributionBuilder(avatars AvatarResolver, logger *slog.Logger) *AttributionBuilder {
	return &AttributionBuilder{
		avatars: avatars,
		logger:  logger,
	}
}

// Build assembles the attribution for one submission. The avatar lookup
// is best-effort: any failure leaves the avatar empty and is never an
// error for the pipeline. Avatar URLs are truncated at the first query
// delimiter to strip cache-busting parameters.
func (b *AttributionBuilder) Build(ctx context.Context, sub domain.Submission) domain.Attribution {
	avatar, err := b.avatars.Avatar(ctx, sub.Author)
	if err != nil {
		b.logger.Debug("avatar lookup failed",
			"author", sub.Author,
			"error", err,
		)
		avatar = ""
	}
	if i := strings.Index(avatar, "?"); i >= 0 {
		avatar = avatar[:i]
	}

	return domain.Attribution{
		Author: domain.AttributionAuthor{
			Name:   sub.Author,
			Avatar: avatar,
			ID:     sub.AuthorFullname,
		},
		Post: domain.AttributionPost{
			ID:      sub.ID,
			URL:     sub.URL,
			Created: int64(sub.CreatedUTC),
		},
	}
}
