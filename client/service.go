package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// dataAPI is the production API implementation over the YouTube Data API v3.
type dataAPI struct {
	service *ytapi.Service
}

// NewDataAPI builds the production API bound to one key. It is the Factory
// used by collectors outside of tests.
func NewDataAPI(ctx context.Context, apiKey string) (API, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey), option.WithHTTPClient(httpClient))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &dataAPI{service: service}, nil
}

func (a *dataAPI) Channel(ctx context.Context, channelID string) (*ytapi.Channel, error) {
	resp, err := a.service.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("channels.list %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return resp.Items[0], nil
}

func (a *dataAPI) PlaylistPage(ctx context.Context, playlistID, pageToken string, maxResults int64) (*ytapi.PlaylistItemListResponse, error) {
	call := a.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(maxResults).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("playlistItems.list %s: %w", playlistID, err)
	}
	return resp, nil
}

func (a *dataAPI) Videos(ctx context.Context, videoIDs []string) ([]*ytapi.Video, error) {
	resp, err := a.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}
	return resp.Items, nil
}

func (a *dataAPI) CommentPage(ctx context.Context, videoID, pageToken string, maxResults int64) (*ytapi.CommentThreadListResponse, error) {
	call := a.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		Order("relevance").
		TextFormat("plainText").
		MaxResults(maxResults).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("commentThreads.list %s: %w", videoID, err)
	}
	return resp, nil
}

func (a *dataAPI) SearchChannel(ctx context.Context, query string) (*ytapi.SearchListResponse, error) {
	resp, err := a.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search.list channel %q: %w", query, err)
	}
	return resp, nil
}

func (a *dataAPI) SearchVideosPage(ctx context.Context, query SearchQuery, pageToken string, maxResults int64) (*ytapi.SearchListResponse, error) {
	call := a.service.Search.List([]string{"snippet"}).
		Q(query.Query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx)
	if query.Order != "" {
		call = call.Order(query.Order)
	}
	if query.PublishedAfter != "" {
		call = call.PublishedAfter(query.PublishedAfter)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search.list video %q: %w", query.Query, err)
	}
	return resp, nil
}

func (a *dataAPI) TrendingVideos(ctx context.Context, regionCode, categoryID string) ([]*ytapi.Video, error) {
	call := a.service.Videos.List([]string{"snippet", "statistics"}).
		Chart("mostPopular").
		RegionCode(regionCode).
		MaxResults(50).
		Context(ctx)
	if categoryID != "" {
		call = call.VideoCategoryId(categoryID)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list mostPopular %s: %w", regionCode, err)
	}
	return resp.Items, nil
}
