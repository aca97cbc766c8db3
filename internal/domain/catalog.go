package domain

// HallResult is the merged output for one hall: every asset extracted
// from its contributing submissions plus one attribution per submission.
// Dedup is scoped per source submission; the same image posted by two
// authors appears twice by design.
type HallResult struct {
	Hall    Hall          `json:"hall"`
	Assets  []Asset       `json:"assets"`
	Sources []Attribution `json:"sources"`
}

// Catalog is the final persisted artifact: hall results in enumeration
// order, filtered to halls with at least one asset.
type Catalog []HallResult

// Hall returns the result for the given hall, if present.
func (c Catalog) Hall(h Hall) (HallResult, bool) {
	for _, result := range c {
		if result.Hall == h {
			return result, true
		}
	}
	return HallResult{}, false
}

// AssetCount returns the total number of assets across all halls.
func (c Catalog) AssetCount() int {
	n := 0
	for _, result := range c {
		n += len(result.Assets)
	}
	return n
}
