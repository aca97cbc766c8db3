package domain

// Asset is one normalized media item extracted from a submission.
// URL is the identity: two assets are the same iff their resolved URLs
// are equal. Assets are never mutated after creation; album resolution
// replaces an asset with zero or more new ones.
type Asset struct {
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	Thumbnail string `json:"thumbnail"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Author    string `json:"author"`
}
