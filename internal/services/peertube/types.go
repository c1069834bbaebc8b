package peertube

// listResponse is the envelope PeerTube uses for every paginated listing.
type listResponse[T any] struct {
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

// Channel identifies the channel a video belongs to.
type Channel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Privacy is the video's visibility setting.
type Privacy struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Video is the subset of a PeerTube video record the sync cares about.
type Video struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	Description           *string `json:"description"`
	Duration              int64   `json:"duration"`
	Views                 int64   `json:"views"`
	Likes                 int64   `json:"likes"`
	Dislikes              int64   `json:"dislikes"`
	NSFW                  bool    `json:"nsfw"`
	ThumbnailPath         string  `json:"thumbnailPath"`
	CreatedAt             string  `json:"createdAt"`
	PublishedAt           string  `json:"publishedAt"`
	UpdatedAt             string  `json:"updatedAt"`
	OriginallyPublishedAt *string `json:"originallyPublishedAt"`
	URL                   string  `json:"url"`
	Channel               Channel `json:"channel"`
	Privacy               Privacy `json:"privacy"`
}

// Import pairs an import job's video with the URL it was pulled from.
type Import struct {
	TargetURL *string `json:"targetUrl"`
	Video     struct {
		ID int64 `json:"id"`
	} `json:"video"`
}
