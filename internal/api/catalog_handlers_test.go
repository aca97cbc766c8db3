package api

import (
	"net/http"
	"testing"

	"encoding/json/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormdex/dormdex-server/internal/domain"
)

func TestGetCatalog(t *testing.T) {
	_, api, st := setupTestServer(t)
	rec := seedCatalog(t, st)

	resp := api.Get("/api/v1/catalog")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body CatalogResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, rec.RunID, body.RunID)
	assert.Equal(t, testSubreddit, body.Subreddit)
	require.Len(t, body.Halls, 2)
	assert.Equal(t, domain.HallShippee, body.Halls[0].Hall)
	assert.Equal(t, domain.HallTowers, body.Halls[1].Hall)
}

func TestGetCatalog_NotParsedYet(t *testing.T) {
	_, api, _ := setupTestServer(t)

	resp := api.Get("/api/v1/catalog")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestListHalls(t *testing.T) {
	_, api, st := setupTestServer(t)
	seedCatalog(t, st)

	resp := api.Get("/api/v1/halls")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body ListHallsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	// The full enumeration is returned, not just populated halls.
	require.Len(t, body.Halls, len(domain.AllHalls()))

	byKey := make(map[string]HallSummary, len(body.Halls))
	for _, h := range body.Halls {
		byKey[h.Hall] = h
	}
	assert.Equal(t, 2, byKey["SHIPPEE"].AssetCount)
	assert.Equal(t, "Shippee", byKey["SHIPPEE"].Name)
	assert.Equal(t, 1, byKey["TOWERS"].AssetCount)
	assert.Equal(t, 0, byKey["ALUMNI"].AssetCount)

	// Enumeration order is preserved.
	assert.Equal(t, "ALUMNI", body.Halls[0].Hall)
}

func TestListHalls_BeforeFirstParse(t *testing.T) {
	_, api, _ := setupTestServer(t)

	resp := api.Get("/api/v1/halls")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body ListHallsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Halls, len(domain.AllHalls()))
	for _, h := range body.Halls {
		assert.Zero(t, h.AssetCount)
	}
}

func TestGetHall(t *testing.T) {
	_, api, st := setupTestServer(t)
	seedCatalog(t, st)

	resp := api.Get("/api/v1/halls/SHIPPEE")
	assert.Equal(t, http.StatusOK, resp.Code)

	var result domain.HallResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))

	assert.Equal(t, domain.HallShippee, result.Hall)
	assert.Len(t, result.Assets, 2)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "husky_fan", result.Sources[0].Author.Name)
}

func TestGetHall_CaseInsensitive(t *testing.T) {
	_, api, st := setupTestServer(t)
	seedCatalog(t, st)

	resp := api.Get("/api/v1/halls/shippee")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestGetHall_NoEntry(t *testing.T) {
	_, api, st := setupTestServer(t)
	seedCatalog(t, st)

	// Valid hall, but nothing was catalogued for it.
	resp := api.Get("/api/v1/halls/ALUMNI")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetHall_UnknownHall(t *testing.T) {
	_, api, _ := setupTestServer(t)

	resp := api.Get("/api/v1/halls/hogwarts")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}
