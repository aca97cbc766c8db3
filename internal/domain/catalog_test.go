package domain

import (
	"encoding/json/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Hall(t *testing.T) {
	catalog := Catalog{
		{Hall: HallShippee, Assets: []Asset{{URL: "https://i.example/a.jpg"}}},
		{Hall: HallTowers, Assets: []Asset{{URL: "https://i.example/b.jpg"}}},
	}

	result, ok := catalog.Hall(HallTowers)
	require.True(t, ok)
	assert.Equal(t, HallTowers, result.Hall)

	_, ok = catalog.Hall(HallBuckley)
	assert.False(t, ok)
}

func TestCatalog_AssetCount(t *testing.T) {
	catalog := Catalog{
		{Hall: HallShippee, Assets: []Asset{{URL: "a"}, {URL: "b"}}},
		{Hall: HallTowers, Assets: []Asset{{URL: "c"}}},
	}

	assert.Equal(t, 3, catalog.AssetCount())
	assert.Equal(t, 0, Catalog{}.AssetCount())
}

func TestHallResult_JSONLayout(t *testing.T) {
	result := HallResult{
		Hall: HallShippee,
		Assets: []Asset{{
			URL:       "https://i.example/a.jpg",
			Thumbnail: "https://i.example/a.jpg",
			Width:     640,
			Height:    480,
			Author:    "t2_xyz",
		}},
		Sources: []Attribution{{
			Author: AttributionAuthor{Name: "husky_fan", ID: "t2_xyz"},
			Post:   AttributionPost{ID: "abc123", URL: "https://reddit.example/abc123", Created: 1650000000},
		}},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded HallResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)

	// Absent avatar must be omitted, not serialized as empty.
	assert.NotContains(t, string(data), "avatar")
}
