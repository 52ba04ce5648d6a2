package client

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/creatorpulse/youtube-analyzer/model"
)

// Page size caps per endpoint, per API limits.
const (
	maxPlaylistPage = 50
	maxCommentPage  = 100
	maxSearchPage   = 50
)

// channelCacheSize bounds the channel-record cache. Channel lookups repeat
// across videos of the same channel, so caching them saves quota.
const channelCacheSize = 256

// Client is the rotator-backed YouTube client the collector drives. All
// calls go through the rotator so quota 403s rotate keys transparently.
type Client struct {
	rotator      *Rotator
	channelCache *lru.Cache[string, model.ChannelRecord]
}

// New builds a production client over the given ordered key list.
func New(ctx context.Context, apiKeys []string) (*Client, error) {
	rotator, err := NewRotator(ctx, apiKeys, NewDataAPI)
	if err != nil {
		return nil, err
	}
	return NewWithRotator(rotator)
}

// NewWithRotator builds a client over an existing rotator. Tests use this
// with a fake API factory.
func NewWithRotator(rotator *Rotator) (*Client, error) {
	cache, err := lru.New[string, model.ChannelRecord](channelCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel cache: %w", err)
	}
	return &Client{
		rotator:      rotator,
		channelCache: cache,
	}, nil
}

// SearchChannelID resolves a handle or username to a channel ID with a
// single best-effort search. Empty result means the search found nothing.
func (c *Client) SearchChannelID(ctx context.Context, query string) (string, error) {
	var resp *ytapi.SearchListResponse
	err := c.rotator.Execute(ctx, func(api API) error {
		var cerr error
		resp, cerr = api.SearchChannel(ctx, query)
		return cerr
	})
	if err != nil {
		return "", err
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", nil
	}
	return resp.Items[0].Snippet.ChannelId, nil
}

// ChannelInfo fetches channel statistics, returning nil when the channel
// does not exist. Results are cached; the URL field is stamped per call
// with the input URL that led here.
func (c *Client) ChannelInfo(ctx context.Context, channelID, inputURL string) (*model.ChannelRecord, error) {
	if rec, ok := c.channelCache.Get(channelID); ok {
		log.Debug().Str("channel_id", channelID).Msg("Using cached channel info")
		rec.URL = inputURL
		return &rec, nil
	}

	var item *ytapi.Channel
	err := c.rotator.Execute(ctx, func(api API) error {
		var cerr error
		item, cerr = api.Channel(ctx, channelID)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		log.Warn().Str("channel_id", channelID).Msg("Channel not found")
		return nil, nil
	}

	rec := parseChannel(item, inputURL)
	c.channelCache.Add(channelID, rec)

	log.Info().
		Str("channel_id", rec.ChannelID).
		Str("title", rec.ChannelTitle).
		Int64("subscribers", rec.SubscriberCount).
		Msg("Channel info retrieved")
	return &rec, nil
}

// ChannelVideos lists up to maxVideos entries from the channel's uploads
// playlist. The records carry snippet-level data only; statistics come
// from the per-video VideoDetails enrichment. On quota exhaustion the
// videos accumulated from completed pages are returned alongside the error.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, maxVideos int) ([]model.VideoRecord, error) {
	var uploads string
	err := c.rotator.Execute(ctx, func(api API) error {
		item, cerr := api.Channel(ctx, channelID)
		if cerr != nil {
			return cerr
		}
		if item != nil && item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
			uploads = item.ContentDetails.RelatedPlaylists.Uploads
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uploads == "" {
		log.Warn().Str("channel_id", channelID).Msg("Channel not found or has no uploads playlist")
		return nil, nil
	}

	videos := make([]model.VideoRecord, 0, maxVideos)
	pageToken := ""
	for len(videos) < maxVideos {
		want := int64(min(maxPlaylistPage, maxVideos-len(videos)))

		var page *ytapi.PlaylistItemListResponse
		err := c.rotator.Execute(ctx, func(api API) error {
			var perr error
			page, perr = api.PlaylistPage(ctx, uploads, pageToken, want)
			return perr
		})
		if err != nil {
			return videos, err
		}

		if len(page.Items) == 0 {
			log.Info().Str("playlist_id", uploads).Msg("No more videos available")
			break
		}
		for _, item := range page.Items {
			if len(videos) >= maxVideos {
				break
			}
			videos = append(videos, parsePlaylistItem(item))
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	log.Info().
		Str("channel_id", channelID).
		Int("video_count", len(videos)).
		Int("requested", maxVideos).
		Msg("Retrieved channel uploads")
	return videos, nil
}

// VideoDetails fetches full statistics, description, duration and tags for
// one video. Returns nil when the video does not exist.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*model.VideoRecord, error) {
	var items []*ytapi.Video
	err := c.rotator.Execute(ctx, func(api API) error {
		var cerr error
		items, cerr = api.Videos(ctx, []string{videoID})
		return cerr
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		log.Warn().Str("video_id", videoID).Msg("Video not found")
		return nil, nil
	}

	rec := parseVideo(items[0])
	return &rec, nil
}

// VideoComments lists up to maxComments top-level comments in relevance
// order. A commentsDisabled 403 yields whatever was collected so far with
// no error; quota exhaustion returns the partial list alongside the error.
func (c *Client) VideoComments(ctx context.Context, videoID string, maxComments int) ([]model.CommentRecord, error) {
	comments := make([]model.CommentRecord, 0, maxComments)
	pageToken := ""
	for len(comments) < maxComments {
		want := int64(min(maxCommentPage, maxComments-len(comments)))

		var page *ytapi.CommentThreadListResponse
		err := c.rotator.Execute(ctx, func(api API) error {
			var perr error
			page, perr = api.CommentPage(ctx, videoID, pageToken, want)
			return perr
		})
		if err != nil {
			if IsCommentsDisabled(err) {
				log.Warn().Str("video_id", videoID).Msg("Comments disabled for video")
				return comments, nil
			}
			return comments, err
		}

		if len(page.Items) == 0 {
			break
		}
		for _, item := range page.Items {
			if len(comments) >= maxComments {
				break
			}
			comments = append(comments, parseCommentThread(item))
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	return comments, nil
}

// SearchVideos runs a paginated video search. Records are snippet-level;
// callers enrich through VideoDetails when statistics are needed.
func (c *Client) SearchVideos(ctx context.Context, query SearchQuery, maxResults int) ([]model.VideoRecord, error) {
	videos := make([]model.VideoRecord, 0, maxResults)
	pageToken := ""
	for len(videos) < maxResults {
		want := int64(min(maxSearchPage, maxResults-len(videos)))

		var page *ytapi.SearchListResponse
		err := c.rotator.Execute(ctx, func(api API) error {
			var perr error
			page, perr = api.SearchVideosPage(ctx, query, pageToken, want)
			return perr
		})
		if err != nil {
			return videos, err
		}

		if len(page.Items) == 0 {
			log.Info().Str("query", query.Query).Msg("Search exhausted")
			break
		}
		for _, item := range page.Items {
			if len(videos) >= maxResults {
				break
			}
			videos = append(videos, parseSearchItem(item))
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	return videos, nil
}

// TrendingVideos fetches one page of most-popular videos for a region,
// optionally filtered to a category. Statistics are parsed directly since
// the chart endpoint returns them.
func (c *Client) TrendingVideos(ctx context.Context, regionCode, categoryID string) ([]model.VideoRecord, error) {
	var items []*ytapi.Video
	err := c.rotator.Execute(ctx, func(api API) error {
		var cerr error
		items, cerr = api.TrendingVideos(ctx, regionCode, categoryID)
		return cerr
	})
	if err != nil {
		return nil, err
	}

	videos := make([]model.VideoRecord, 0, len(items))
	for _, item := range items {
		videos = append(videos, parseVideo(item))
	}
	return videos, nil
}
