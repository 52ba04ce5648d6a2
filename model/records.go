// Package model contains the data records produced by a collection run.
package model

import "time"

// VideoRecord holds the full per-video data after detail enrichment.
// Counts default to 0 when the API omits the statistic; Duration defaults
// to "PT0S" when contentDetails carries no duration.
type VideoRecord struct {
	VideoID      string   `json:"video_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ChannelID    string   `json:"channel_id"`
	ChannelTitle string   `json:"channel_title"`
	PublishedAt  string   `json:"published_at"`
	Duration     string   `json:"duration"`
	ViewCount    int64    `json:"view_count"`
	LikeCount    int64    `json:"like_count"`
	CommentCount int64    `json:"comment_count"`
	Tags         []string `json:"tags"`
	CategoryID   string   `json:"category_id"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

// EngagementRate returns ((likes+comments)/views)*100 for this video.
// Videos with zero views have no defined rate; the second return is false.
func (v VideoRecord) EngagementRate() (float64, bool) {
	if v.ViewCount <= 0 {
		return 0, false
	}
	return float64(v.LikeCount+v.CommentCount) / float64(v.ViewCount) * 100, true
}

// CommentRecord is one top-level comment on a video.
type CommentRecord struct {
	CommentID       string `json:"comment_id"`
	VideoID         string `json:"video_id"`
	Text            string `json:"text"`
	Author          string `json:"author"`
	AuthorChannelID string `json:"author_channel_id"`
	LikeCount       int64  `json:"like_count"`
	PublishedAt     string `json:"published_at"`
	UpdatedAt       string `json:"updated_at"`
}

// TranscriptSegment is one caption entry in chronological order.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TranscriptRecord is the normalized transcript for a video. At most one
// transcript is kept per video. Segments may be empty when the source
// payload was unrecognized; FullText is always populated.
type TranscriptRecord struct {
	VideoID      string              `json:"video_id"`
	Language     string              `json:"language"`
	LanguageCode string              `json:"language_code"`
	IsGenerated  bool                `json:"is_generated"`
	FullText     string              `json:"full_text"`
	Segments     []TranscriptSegment `json:"segments"`
}

// ChannelRecord holds channel-level statistics plus the input URL that
// resolved to this channel.
type ChannelRecord struct {
	ChannelID       string `json:"channel_id"`
	ChannelTitle    string `json:"channel_title"`
	Description     string `json:"description"`
	PublishedAt     string `json:"published_at"`
	SubscriberCount int64  `json:"subscriber_count"`
	ViewCount       int64  `json:"view_count"`
	VideoCount      int64  `json:"video_count"`
	Country         string `json:"country"`
	URL             string `json:"url"`
}

// DateRange is the min/max published date (date portion only) over the
// collected videos.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SummaryStats is derived once per run as a pure function of the merged
// collections.
type SummaryStats struct {
	ChannelsAnalyzed  int            `json:"channels_analyzed"`
	TotalVideos       int            `json:"total_videos"`
	TotalComments     int            `json:"total_comments"`
	TotalTranscripts  int            `json:"total_transcripts"`
	TotalViews        int64          `json:"total_views"`
	TotalLikes        int64          `json:"total_likes"`
	AvgEngagementRate float64        `json:"avg_engagement_rate"`
	TopCategories     map[string]int `json:"top_categories"`
	DateRange         DateRange      `json:"date_range"`
}

// CollectionResult is the top-level aggregate returned by one run. It is
// purely accumulated during the run and must not be mutated after the
// collector returns it.
type CollectionResult struct {
	CollectionID   string             `json:"collection_id"`
	Channels       []ChannelRecord    `json:"channels"`
	Videos         []VideoRecord      `json:"videos"`
	Transcripts    []TranscriptRecord `json:"transcripts"`
	Comments       []CommentRecord    `json:"comments"`
	CollectionDate time.Time          `json:"collection_date"`
	Summary        SummaryStats       `json:"summary"`
}
