// Package di provides dependency injection configuration for the dormdex server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/dormdex/dormdex-server/internal/config"
	"github.com/dormdex/dormdex-server/internal/di/providers"
	"github.com/dormdex/dormdex-server/internal/logger"
	"github.com/dormdex/dormdex-server/internal/pipeline"
)

// NewContainer creates and configures the DI container with all providers.
// Flags carry command-line overrides into the config provider.
func NewContainer(flags config.Flags) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig(flags))
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// External clients
	do.Provide(injector, providers.ProvideRedditClient)
	do.Provide(injector, providers.ProvideImgurClient)

	// Pipeline
	do.Provide(injector, providers.ProvidePipeline)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. This triggers lazy initialization
// of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.RedditClientHandle](injector)
	_ = do.MustInvoke[*providers.ImgurClientHandle](injector)
	_ = do.MustInvoke[*pipeline.Pipeline](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
