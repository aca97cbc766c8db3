package providers

import (
	"github.com/samber/do/v2"

	"github.com/dormdex/dormdex-server/internal/logger"
	"github.com/dormdex/dormdex-server/internal/pipeline"
)

// ProvidePipeline provides the parse pipeline with its extraction and
// attribution stages wired to the real external clients.
func ProvidePipeline(i do.Injector) (*pipeline.Pipeline, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	redditHandle := do.MustInvoke[*RedditClientHandle](i)
	imgurHandle := do.MustInvoke[*ImgurClientHandle](i)

	extractor := pipeline.NewExtractor(imgurHandle.Client, log.Logger)
	attribution := pipeline.NewAttributionBuilder(redditHandle.Client, log.Logger)
	aggregator := pipeline.NewAggregator(extractor, attribution, log.Logger)

	return pipeline.New(aggregator, storeHandle.Store, log.Logger), nil
}
