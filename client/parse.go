package client

import (
	"github.com/creatorpulse/youtube-analyzer/model"
	ytapi "google.golang.org/api/youtube/v3"
)

// Boundary parsing of the raw API structs into model records. Defaulting
// rules (missing statistics -> 0, missing duration -> PT0S) are applied
// here exactly once so nothing downstream re-checks for absent fields.

func parseChannel(item *ytapi.Channel, inputURL string) model.ChannelRecord {
	rec := model.ChannelRecord{
		ChannelID: item.Id,
		Country:   "Unknown",
		URL:       inputURL,
	}
	if item.Snippet != nil {
		rec.ChannelTitle = item.Snippet.Title
		rec.Description = item.Snippet.Description
		rec.PublishedAt = item.Snippet.PublishedAt
		if item.Snippet.Country != "" {
			rec.Country = item.Snippet.Country
		}
	}
	if item.Statistics != nil {
		rec.SubscriberCount = int64(item.Statistics.SubscriberCount)
		rec.ViewCount = int64(item.Statistics.ViewCount)
		rec.VideoCount = int64(item.Statistics.VideoCount)
	}
	return rec
}

func parseVideo(item *ytapi.Video) model.VideoRecord {
	rec := model.VideoRecord{
		VideoID:  item.Id,
		Duration: "PT0S",
	}
	if item.Snippet != nil {
		rec.Title = item.Snippet.Title
		rec.Description = item.Snippet.Description
		rec.ChannelID = item.Snippet.ChannelId
		rec.ChannelTitle = item.Snippet.ChannelTitle
		rec.PublishedAt = item.Snippet.PublishedAt
		rec.Tags = item.Snippet.Tags
		rec.CategoryID = item.Snippet.CategoryId
		rec.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	if item.ContentDetails != nil && item.ContentDetails.Duration != "" {
		rec.Duration = item.ContentDetails.Duration
	}
	if item.Statistics != nil {
		rec.ViewCount = int64(item.Statistics.ViewCount)
		rec.LikeCount = int64(item.Statistics.LikeCount)
		rec.CommentCount = int64(item.Statistics.CommentCount)
	}
	return rec
}

func parsePlaylistItem(item *ytapi.PlaylistItem) model.VideoRecord {
	rec := model.VideoRecord{
		Duration: "PT0S",
	}
	if item.ContentDetails != nil {
		rec.VideoID = item.ContentDetails.VideoId
	}
	if item.Snippet != nil {
		if rec.VideoID == "" && item.Snippet.ResourceId != nil {
			rec.VideoID = item.Snippet.ResourceId.VideoId
		}
		rec.Title = item.Snippet.Title
		rec.Description = item.Snippet.Description
		rec.ChannelID = item.Snippet.ChannelId
		rec.ChannelTitle = item.Snippet.ChannelTitle
		rec.PublishedAt = item.Snippet.PublishedAt
		rec.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	return rec
}

func parseSearchItem(item *ytapi.SearchResult) model.VideoRecord {
	rec := model.VideoRecord{
		Duration: "PT0S",
	}
	if item.Id != nil {
		rec.VideoID = item.Id.VideoId
	}
	if item.Snippet != nil {
		rec.Title = item.Snippet.Title
		rec.Description = item.Snippet.Description
		rec.ChannelID = item.Snippet.ChannelId
		rec.ChannelTitle = item.Snippet.ChannelTitle
		rec.PublishedAt = item.Snippet.PublishedAt
		rec.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	return rec
}

func parseCommentThread(item *ytapi.CommentThread) model.CommentRecord {
	rec := model.CommentRecord{
		CommentID: item.Id,
	}
	if item.Snippet == nil {
		return rec
	}
	rec.VideoID = item.Snippet.VideoId
	top := item.Snippet.TopLevelComment
	if top == nil || top.Snippet == nil {
		return rec
	}
	rec.Text = top.Snippet.TextDisplay
	rec.Author = top.Snippet.AuthorDisplayName
	if top.Snippet.AuthorChannelId != nil {
		rec.AuthorChannelID = top.Snippet.AuthorChannelId.Value
	}
	rec.LikeCount = top.Snippet.LikeCount
	rec.PublishedAt = top.Snippet.PublishedAt
	rec.UpdatedAt = top.Snippet.UpdatedAt
	return rec
}

// bestThumbnail prefers maxres, then high, matching the original
// collection behavior.
func bestThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Maxres != nil && t.Maxres.Url != "" {
		return t.Maxres.Url
	}
	if t.High != nil && t.High.Url != "" {
		return t.High.Url
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil && t.Default.Url != "" {
		return t.Default.Url
	}
	return ""
}
