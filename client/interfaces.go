// Package client wraps the YouTube Data API behind a key-rotating client
// with paginated fetchers for uploads, comments, search and trending.
package client

import (
	"context"

	ytapi "google.golang.org/api/youtube/v3"
)

// SearchQuery carries the optional filters of a video search.
type SearchQuery struct {
	Query          string
	Order          string // API default "relevance" when empty
	PublishedAfter string // RFC3339, optional
}

// API is the page-level surface of the YouTube Data API consumed by the
// fetchers. The real implementation wraps *ytapi.Service; tests provide
// fakes that construct the response structs directly.
type API interface {
	// Channel issues channels.list for one ID with snippet, statistics and
	// contentDetails parts. Returns nil when the channel does not exist.
	Channel(ctx context.Context, channelID string) (*ytapi.Channel, error)

	// PlaylistPage issues one playlistItems.list page.
	PlaylistPage(ctx context.Context, playlistID, pageToken string, maxResults int64) (*ytapi.PlaylistItemListResponse, error)

	// Videos issues videos.list for a batch of IDs with snippet,
	// statistics and contentDetails parts.
	Videos(ctx context.Context, videoIDs []string) ([]*ytapi.Video, error)

	// CommentPage issues one commentThreads.list page ordered by relevance.
	CommentPage(ctx context.Context, videoID, pageToken string, maxResults int64) (*ytapi.CommentThreadListResponse, error)

	// SearchChannel issues a single search.list with type=channel and
	// maxResults=1 for handle/username resolution.
	SearchChannel(ctx context.Context, query string) (*ytapi.SearchListResponse, error)

	// SearchVideosPage issues one search.list page with type=video.
	SearchVideosPage(ctx context.Context, query SearchQuery, pageToken string, maxResults int64) (*ytapi.SearchListResponse, error)

	// TrendingVideos issues videos.list with chart=mostPopular for a region,
	// optionally filtered to one category.
	TrendingVideos(ctx context.Context, regionCode, categoryID string) ([]*ytapi.Video, error)
}

// Factory builds an API bound to one credential. The rotator re-invokes it
// on every key rotation.
type Factory func(ctx context.Context, apiKey string) (API, error)
