package domain

// AttributionAuthor identifies the submitting author. Avatar is
// best-effort: empty means the lookup found nothing, not an error.
type AttributionAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	ID     string `json:"id"`
}

// AttributionPost identifies the source post.
type AttributionPost struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Created int64  `json:"created"`
}

// Attribution ties one contributing submission back to its author and post.
type Attribution struct {
	Author AttributionAuthor `json:"author"`
	Post   AttributionPost   `json:"post"`
}
