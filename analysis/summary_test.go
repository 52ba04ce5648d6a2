package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatorpulse/youtube-analyzer/model"
)

func video(id string, views, likes, comments int64, publishedAt, category string) model.VideoRecord {
	return model.VideoRecord{
		VideoID:      id,
		ViewCount:    views,
		LikeCount:    likes,
		CommentCount: comments,
		PublishedAt:  publishedAt,
		CategoryID:   category,
	}
}

func TestBuildSummaryEngagement(t *testing.T) {
	t.Run("zero view videos are excluded from the average", func(t *testing.T) {
		result := &model.CollectionResult{
			Videos: []model.VideoRecord{
				video("a", 1000, 90, 10, "2024-01-01T00:00:00Z", "22"), // 10%
				video("b", 0, 50, 10, "2024-01-02T00:00:00Z", "22"),    // excluded
				video("c", 500, 20, 5, "2024-01-03T00:00:00Z", "22"),   // 5%
			},
		}

		summary := BuildSummary(result)

		assert.InDelta(t, 7.5, summary.AvgEngagementRate, 1e-9)
		assert.Equal(t, 3, summary.TotalVideos)
		assert.Equal(t, int64(1500), summary.TotalViews)
		assert.Equal(t, int64(160), summary.TotalLikes)
	})

	t.Run("all zero view videos yield zero average", func(t *testing.T) {
		result := &model.CollectionResult{
			Videos: []model.VideoRecord{
				video("a", 0, 5, 1, "", ""),
				video("b", 0, 2, 0, "", ""),
			},
		}

		summary := BuildSummary(result)
		assert.Zero(t, summary.AvgEngagementRate)
	})
}

func TestBuildSummaryDateRange(t *testing.T) {
	t.Run("range spans earliest to latest date portion", func(t *testing.T) {
		result := &model.CollectionResult{
			Videos: []model.VideoRecord{
				video("a", 1, 0, 0, "2024-03-15T10:00:00Z", ""),
				video("b", 1, 0, 0, "2023-11-02T08:30:00Z", ""),
				video("c", 1, 0, 0, "2024-01-20T22:00:00Z", ""),
			},
		}

		summary := BuildSummary(result)
		assert.Equal(t, "2023-11-02", summary.DateRange.Start)
		assert.Equal(t, "2024-03-15", summary.DateRange.End)
	})

	t.Run("no videos yields NA range", func(t *testing.T) {
		summary := BuildSummary(&model.CollectionResult{})
		assert.Equal(t, "N/A", summary.DateRange.Start)
		assert.Equal(t, "N/A", summary.DateRange.End)
	})

	t.Run("videos without dates yield NA range", func(t *testing.T) {
		result := &model.CollectionResult{
			Videos: []model.VideoRecord{video("a", 1, 0, 0, "", "")},
		}

		summary := BuildSummary(result)
		assert.Equal(t, "N/A", summary.DateRange.Start)
		assert.Equal(t, "N/A", summary.DateRange.End)
	})

	t.Run("single video collapses the range", func(t *testing.T) {
		result := &model.CollectionResult{
			Videos: []model.VideoRecord{video("a", 1, 0, 0, "2024-05-01T12:00:00Z", "")},
		}

		summary := BuildSummary(result)
		assert.Equal(t, "2024-05-01", summary.DateRange.Start)
		assert.Equal(t, "2024-05-01", summary.DateRange.End)
	})
}

func TestBuildSummaryTopCategories(t *testing.T) {
	result := &model.CollectionResult{
		Videos: []model.VideoRecord{
			video("a", 1, 0, 0, "", "22"),
			video("b", 1, 0, 0, "", "22"),
			video("c", 1, 0, 0, "", "22"),
			video("d", 1, 0, 0, "", "10"),
			video("e", 1, 0, 0, "", "10"),
			video("f", 1, 0, 0, "", "24"),
			video("g", 1, 0, 0, "", "25"),
			video("h", 1, 0, 0, "", "26"),
			video("i", 1, 0, 0, "", "27"),
		},
	}

	summary := BuildSummary(result)

	// Six distinct categories; only the top five survive.
	assert.Len(t, summary.TopCategories, 5)
	assert.Equal(t, 3, summary.TopCategories["22"])
	assert.Equal(t, 2, summary.TopCategories["10"])
	assert.NotContains(t, summary.TopCategories, "27")
}

func TestBuildSummaryCounts(t *testing.T) {
	result := &model.CollectionResult{
		Channels:    []model.ChannelRecord{{ChannelID: "UC1"}, {ChannelID: "UC2"}},
		Videos:      []model.VideoRecord{video("a", 1, 0, 0, "", "")},
		Comments:    []model.CommentRecord{{CommentID: "c1"}, {CommentID: "c2"}, {CommentID: "c3"}},
		Transcripts: []model.TranscriptRecord{{VideoID: "a"}},
	}

	summary := BuildSummary(result)

	assert.Equal(t, 2, summary.ChannelsAnalyzed)
	assert.Equal(t, 1, summary.TotalVideos)
	assert.Equal(t, 3, summary.TotalComments)
	assert.Equal(t, 1, summary.TotalTranscripts)
}
