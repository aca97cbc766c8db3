package imgur

import (
	"context"
	"fmt"
	"regexp"

	"encoding/json/v2"
)

// AlbumImage is one image of an album, as returned by the API.
type AlbumImage struct {
	Link   string `json:"link"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// albumURLPattern matches imgur album and gallery links and captures the
// album hash. Direct image links (i.imgur.com/...) deliberately do not
// match: they are already single assets.
var albumURLPattern = regexp.MustCompile(`^https?://(?:www\.|m\.)?imgur\.com/(?:a|gallery)/([a-zA-Z0-9]+)`)

// ParseAlbumURL extracts the album hash from an imgur album or gallery
// URL. The second return is false when the URL is not an album link.
func ParseAlbumURL(raw string) (string, bool) {
	m := albumURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AlbumImages retrieves the images of an album by hash, in album order.
func (c *Client) AlbumImages(ctx context.Context, hash string) ([]AlbumImage, error) {
	body, err := c.get(ctx, "/3/album/"+hash+"/images")
	if err != nil {
		return nil, fmt.Errorf("album %q: %w", hash, err)
	}

	var resp struct {
		Data    []AlbumImage `json:"data"`
		Success bool         `json:"success"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse album %q response: %w", hash, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("album %q lookup unsuccessful", hash)
	}

	return resp.Data, nil
}
