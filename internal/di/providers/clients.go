package providers

import (
	"github.com/samber/do/v2"

	"github.com/dormdex/dormdex-server/internal/config"
	"github.com/dormdex/dormdex-server/internal/imgur"
	"github.com/dormdex/dormdex-server/internal/logger"
	"github.com/dormdex/dormdex-server/internal/reddit"
)

// RedditClientHandle wraps the Reddit client for injection.
type RedditClientHandle struct {
	*reddit.Client
}

// ProvideRedditClient provides the Reddit API client. The avatar lookup
// used by the serve path is unauthenticated, so missing credentials are
// not an error here.
func ProvideRedditClient(i do.Injector) (*RedditClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := reddit.New(reddit.Credentials{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
	}, cfg.Source.UserAgent, log.Logger)

	return &RedditClientHandle{Client: client}, nil
}

// ImgurClientHandle wraps the Imgur client for injection.
type ImgurClientHandle struct {
	*imgur.Client
}

// ProvideImgurClient provides the Imgur API client for album expansion.
func ProvideImgurClient(i do.Injector) (*ImgurClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Imgur.ClientID == "" {
		log.Warn("No Imgur client ID configured - album expansion will fail and albums will be dropped")
	}

	return &ImgurClientHandle{Client: imgur.New(cfg.Imgur.ClientID, log.Logger)}, nil
}
