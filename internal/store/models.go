package store

// Video is the primary record for one PeerTube video. Optional fields use
// pointers so "absent" and "empty string" stay distinguishable across merge
// passes.
type Video struct {
	ID                  string
	Name                string
	Description         string
	Duration            int64
	Views               int64
	Likes               int64
	Dislikes            int64
	NSFW                bool
	ThumbnailPath       *string
	CreatedAt           *string
	PublishedAt         *string
	UpdatedAt           *string
	Channel             string
	ChannelID           int64
	Privacy             string
	URL                 string
	OriginalFilename    *string
	SourceURL           *string
	ManualID            *string
	ExternalID          *string
	OriginalPublishDate *string
}

// Vod is one archived stream, seeded from a transcript filename and enriched
// from auxiliary sources.
type Vod struct {
	VodID            string
	ChatID           *string
	VideoURL         *string
	VideoURLYouTube  *string
	VideoURLPeerTube *string
	Title            *string
	Game             *string
	Date             *string
	Duration         *int64
}

// Enriched reports whether every enrichable field is already populated, in
// which case enrichment passes skip the record.
func (v *Vod) Enriched() bool {
	return v.ChatID != nil && v.VideoURL != nil && v.VideoURLYouTube != nil &&
		v.Game != nil && v.Duration != nil
}

// TranscriptSegment is one subtitle entry belonging to a VOD.
type TranscriptSegment struct {
	VodID   string
	Index   int
	Speaker int
	Start   string
	End     string
	Text    string
}

// YTVideo is YouTube metadata for one spreadsheet-listed mirror upload.
type YTVideo struct {
	VideoID     string
	VodDate     string
	Title       string
	Description string
	UploadDate  string
	Channel     string
	Duration    int64
}
