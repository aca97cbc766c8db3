package domain

// RawSubmission is one submission as returned by the listing API.
// Only the fields the pipeline reads are decoded; everything else in the
// upstream payload is ignored. All media containers are optional and any
// combination may be absent.
type RawSubmission struct {
	Selftext         string                        `json:"selftext"`
	Title            string                        `json:"title"`
	Name             string                        `json:"name"`
	Ups              int                           `json:"ups"`
	UpvoteRatio      float64                       `json:"upvote_ratio"`
	Score            int                           `json:"score"`
	IsGallery        bool                          `json:"is_gallery"`
	IsVideo          bool                          `json:"is_video"`
	Media            *Media                        `json:"media"`
	SecureMedia      *Media                        `json:"secure_media"`
	MediaMetadata    map[string]MediaMetadataEntry `json:"media_metadata"`
	Preview          *Preview                      `json:"preview"`
	Author           string                        `json:"author"`
	AuthorFullname   string                        `json:"author_fullname"`
	ID               string                        `json:"id"`
	URL              string                        `json:"url"`
	CreatedUTC       float64                       `json:"created_utc"`
	LinkFlairText    string                        `json:"link_flair_text"`
	Subreddit        string                        `json:"subreddit"`
}

// Media is a submission's media container. Exactly one of the nested
// shapes is populated in practice, but the decoder tolerates any mix.
type Media struct {
	RedditVideo *RedditVideo `json:"reddit_video,omitempty"`
	OEmbed      *OEmbed      `json:"oembed,omitempty"`
}

// RedditVideo is the native video shape.
type RedditVideo struct {
	FallbackURL string `json:"fallback_url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Duration    int    `json:"duration"`
	IsGif       bool   `json:"is_gif"`
}

// OEmbed is the rich external embed shape.
type OEmbed struct {
	ProviderName    string `json:"provider_name"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	ThumbnailURL    string `json:"thumbnail_url"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
}

// Preview holds the submission's preview image list.
type Preview struct {
	Enabled bool           `json:"enabled"`
	Images  []PreviewImage `json:"images"`
}

// PreviewImage is one preview entry; only the source resolution is used.
type PreviewImage struct {
	Source ImageSource `json:"source"`
}

// ImageSource is a single image URL with dimensions.
type ImageSource struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MediaMetadataEntry is one entry of the per-item gallery metadata mapping.
type MediaMetadataEntry struct {
	Status string          `json:"status"`
	Kind   string          `json:"e"`
	S      MediaResolution `json:"s"`
}

// MediaResolution is the "standard size" resolution sub-object of a
// gallery metadata entry.
type MediaResolution struct {
	URL    string `json:"u"`
	Width  int    `json:"x"`
	Height int    `json:"y"`
}

// HasMedia reports whether the submission carries any media worth
// extracting. Mirrors the ingest filter: gallery or native video posts.
func (r *RawSubmission) HasMedia() bool {
	return r.IsGallery || r.IsVideo
}

// Submission is the minimal projection of a RawSubmission that the
// pipeline operates on. Built once per media-bearing raw record and
// never mutated afterwards.
type Submission struct {
	Selftext       string                        `json:"selftext"`
	Title          string                        `json:"title"`
	Name           string                        `json:"name"`
	Ups            int                           `json:"ups"`
	UpvoteRatio    float64                       `json:"upvote_ratio"`
	Score          int                           `json:"score"`
	Media          *Media                        `json:"media"`
	SecureMedia    *Media                        `json:"secure_media"`
	MediaMetadata  map[string]MediaMetadataEntry `json:"media_metadata,omitempty"`
	Preview        *Preview                      `json:"preview,omitempty"`
	Author         string                        `json:"author"`
	AuthorFullname string                        `json:"author_fullname"`
	ID             string                        `json:"id"`
	URL            string                        `json:"url"`
	CreatedUTC     float64                       `json:"created_utc"`
	LinkFlairText  string                        `json:"link_flair_text"`
}

// Project strips a raw submission down to the fields the pipeline needs.
func (r *RawSubmission) Project() Submission {
	return Submission{
		Selftext:       r.Selftext,
		Title:          r.Title,
		Name:           r.Name,
		Ups:            r.Ups,
		UpvoteRatio:    r.UpvoteRatio,
		Score:          r.Score,
		Media:          r.Media,
		SecureMedia:    r.SecureMedia,
		MediaMetadata:  r.MediaMetadata,
		Preview:        r.Preview,
		Author:         r.Author,
		AuthorFullname: r.AuthorFullname,
		ID:             r.ID,
		URL:            r.URL,
		CreatedUTC:     r.CreatedUTC,
		LinkFlairText:  r.LinkFlairText,
	}
}

// ClassifiedSubmission is a projected submission with its resolved hall.
type ClassifiedSubmission struct {
	Submission
	Hall Hall `json:"hall"`
}

// Classify attaches the hall resolved from the submission's flair.
// The second return is false when the flair matches no hall; the
// submission then joins no catalog group.
func (s Submission) Classify() (ClassifiedSubmission, bool) {
	hall, ok := ResolveHall(s.LinkFlairText)
	if !ok {
		return ClassifiedSubmission{Submission: s}, false
	}
	return ClassifiedSubmission{Submission: s, Hall: hall}, true
}
