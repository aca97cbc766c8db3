package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"encoding/json/v2"

	"github.com/dormdex/dormdex-server/internal/domain"
)

// listingEnvelope is the wire shape of a listing page.
type listingEnvelope struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data domain.RawSubmission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchNew retrieves the complete /new listing for a subreddit, newest
// first, following the "after" cursor until the listing is exhausted.
// A failed page fails the whole fetch; there is no partial batch.
func (c *Client) FetchNew(ctx context.Context, subreddit string, pageSize int) ([]domain.RawSubmission, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}

	var (
		submissions []domain.RawSubmission
		after       string
	)

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("raw_json", "1")
		if after != "" {
			query.Set("after", after)
		}

		body, err := c.doAuthed(ctx, "/r/"+subreddit+"/new", query)
		if err != nil {
			return nil, fmt.Errorf("fetch listing page: %w", err)
		}

		var page listingEnvelope
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("parse listing page: %w", err)
		}

		for _, child := range page.Data.Children {
			submissions = append(submissions, child.Data)
		}

		c.logger.Debug("listing page fetched",
			"subreddit", subreddit,
			"page_count", len(page.Data.Children),
			"total", len(submissions),
		)

		if page.Data.After == "" || len(page.Data.Children) == 0 {
			break
		}
		after = page.Data.After
	}

	c.logger.Info("listing fetched",
		"subreddit", subreddit,
		"count", len(submissions),
	)

	return submissions, nil
}
