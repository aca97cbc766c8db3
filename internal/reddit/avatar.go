package reddit

import (
	"context"
	"fmt"

	"encoding/json/v2"
)

// Avatar looks up a user's profile image URL via the public about
// endpoint. Returns the raw icon URL, which may carry cache-busting
// query parameters; callers decide how much of it to keep. An empty
// string with nil error means the user has no avatar set.
func (c *Client) Avatar(ctx context.Context, username string) (string, error) {
	body, err := c.get(ctx, c.publicURL+"/user/"+username+"/about.json", nil)
	if err != nil {
		return "", fmt.Errorf("avatar lookup for %q: %w", username, err)
	}

	var about struct {
		Data struct {
			IconImg string `json:"icon_img"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &about); err != nil {
		return "", fmt.Errorf("parse about response for %q: %w", username, err)
	}

	return about.Data.IconImg, nil
}
