package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dormdex/dormdex-server/internal/domain"
	domainerrors "github.com/dormdex/dormdex-server/internal/errors"
	"github.com/dormdex/dormdex-server/internal/store"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Get catalog",
		Description: "Returns the full parsed catalog with provenance",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "listHalls",
		Method:      http.MethodGet,
		Path:        "/api/v1/halls",
		Summary:     "List halls",
		Description: "Returns the full hall enumeration with per-hall asset counts",
		Tags:        []string{"Halls"},
	}, s.handleListHalls)

	huma.Register(s.api, huma.Operation{
		OperationID: "getHall",
		Method:      http.MethodGet,
		Path:        "/api/v1/halls/{hall}",
		Summary:     "Get hall",
		Description: "Returns one hall's assets and sources",
		Tags:        []string{"Halls"},
	}, s.handleGetHall)
}

// === DTOs ===

type CatalogResponse struct {
	RunID     string         `json:"run_id" doc:"Fetch run that produced this catalog"`
	Subreddit string         `json:"subreddit" doc:"Source subreddit"`
	ParsedAt  time.Time      `json:"parsed_at" doc:"When the catalog was parsed"`
	Halls     domain.Catalog `json:"halls" doc:"Hall results in enumeration order"`
}

type CatalogOutput struct {
	Body CatalogResponse
}

type HallSummary struct {
	Hall       string `json:"hall" doc:"Hall key"`
	Name       string `json:"name" doc:"Display name"`
	AssetCount int    `json:"asset_count" doc:"Number of assets in the current catalog"`
}

type ListHallsResponse struct {
	Halls []HallSummary `json:"halls" doc:"Full hall enumeration"`
}

type ListHallsOutput struct {
	Body ListHallsResponse
}

type GetHallInput struct {
	Hall string `path:"hall" doc:"Hall key (e.g. SHIPPEE) or display name"`
}

type HallOutput struct {
	Body domain.HallResult
}

// === Handlers ===

func (s *Server) handleGetCatalog(ctx context.Context, _ *struct{}) (*CatalogOutput, error) {
	rec, err := s.store.GetCatalog(ctx, s.subreddit)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("no catalog has been parsed yet")
		}
		s.logger.Error("failed to load catalog", "error", err)
		return nil, domainerrors.Internal("failed to load catalog")
	}

	return &CatalogOutput{Body: CatalogResponse{
		RunID:     rec.RunID,
		Subreddit: rec.Subreddit,
		ParsedAt:  rec.ParsedAt,
		Halls:     rec.Catalog,
	}}, nil
}

func (s *Server) handleListHalls(ctx context.Context, _ *struct{}) (*ListHallsOutput, error) {
	// The enumeration is served even before the first parse; counts are
	// zero when no catalog exists.
	var catalog domain.Catalog
	rec, err := s.store.GetCatalog(ctx, s.subreddit)
	switch {
	case err == nil:
		catalog = rec.Catalog
	case errors.Is(err, store.ErrNotFound):
		// no parse yet
	default:
		s.logger.Error("failed to load catalog", "error", err)
		return nil, domainerrors.Internal("failed to load catalog")
	}

	halls := make([]HallSummary, 0, len(domain.AllHalls()))
	for _, hall := range domain.AllHalls() {
		summary := HallSummary{
			Hall: string(hall),
			Name: hall.DisplayName(),
		}
		if result, ok := catalog.Hall(hall); ok {
			summary.AssetCount = len(result.Assets)
		}
		halls = append(halls, summary)
	}

	return &ListHallsOutput{Body: ListHallsResponse{Halls: halls}}, nil
}

func (s *Server) handleGetHall(ctx context.Context, input *GetHallInput) (*HallOutput, error) {
	hall, ok := resolveHallParam(input.Hall)
	if !ok {
		return nil, domainerrors.Validationf("unknown hall %q", input.Hall)
	}

	result, err := s.store.GetHallResult(ctx, s.subreddit, hall)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("no entry for hall %q", hall.DisplayName())
		}
		s.logger.Error("failed to load hall result", "hall", hall, "error", err)
		return nil, domainerrors.Internal("failed to load hall result")
	}

	return &HallOutput{Body: *result}, nil
}

// resolveHallParam accepts either the hall key (SHIPPEE) or the display
// name (Shippee), case-insensitively.
func resolveHallParam(param string) (domain.Hall, bool) {
	if hall := domain.Hall(strings.ToUpper(param)); hall.Valid() {
		return hall, true
	}
	return domain.ResolveHall(param)
}
