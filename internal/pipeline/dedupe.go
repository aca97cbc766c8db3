package pipeline

import "github.com/dormdex/dormdex-server/internal/domain"

// Dedupe removes assets with a duplicate URL, keeping the first
// occurrence. Stable: survivors keep their relative order. Empty-URL
// placeholders are dropped outright.
func Dedupe(assets []domain.Asset) []domain.Asset {
	seen := make(map[string]bool, len(assets))
	out := make([]domain.Asset, 0, len(assets))

	for _, asset := range assets {
		if asset.URL == "" || seen[asset.URL] {
			continue
		}
		seen[asset.URL] = true
		out = append(out, asset)
	}

	return out
}
