package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatorpulse/youtube-analyzer/model"
)

func TestViralScore(t *testing.T) {
	t.Run("no videos scores exactly zero", func(t *testing.T) {
		assert.Zero(t, ViralScore(&model.CollectionResult{}))
	})

	t.Run("single strong video without comments", func(t *testing.T) {
		result := &model.CollectionResult{
			Videos: []model.VideoRecord{
				video("a", 2_000_000, 100_000, 5_000, "2024-01-01T00:00:00Z", "22"),
			},
		}

		// views 100, engagement 52.5, growth neutral 50, consistency 70,
		// sentiment neutral 50.
		assert.Equal(t, 67.8, ViralScore(result))
	})

	t.Run("positive comments lift the score", func(t *testing.T) {
		base := &model.CollectionResult{
			Videos: []model.VideoRecord{
				video("a", 2_000_000, 100_000, 5_000, "2024-01-01T00:00:00Z", "22"),
			},
		}
		lifted := &model.CollectionResult{
			Videos: base.Videos,
			Comments: []model.CommentRecord{
				{Text: "I love this channel"},
				{Text: "Great explanation, thank you!"},
			},
		}

		assert.Greater(t, ViralScore(lifted), ViralScore(base))
	})
}

func TestViewsSubScore(t *testing.T) {
	tests := []struct {
		avgViews int64
		want     float64
	}{
		{2_000_000, 100},
		{1_000_000, 100},
		{600_000, 80},
		{500_000, 80},
		{150_000, 60},
		{100_000, 60},
		{60_000, 40},
		{50_000, 40},
		{49_999, 20},
		{100, 20},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("avg_%d", tt.avgViews), func(t *testing.T) {
			videos := []model.VideoRecord{{ViewCount: tt.avgViews}}
			assert.Equal(t, tt.want, viewsSubScore(videos))
		})
	}
}

func TestEngagementSubScore(t *testing.T) {
	t.Run("caps at 100", func(t *testing.T) {
		videos := []model.VideoRecord{{ViewCount: 100, LikeCount: 50, CommentCount: 10}}
		assert.Equal(t, 100.0, engagementSubScore(videos))
	})

	t.Run("zero view videos do not drag the average", func(t *testing.T) {
		videos := []model.VideoRecord{
			{ViewCount: 1000, LikeCount: 40, CommentCount: 10}, // 5%
			{ViewCount: 0, LikeCount: 999},
		}
		assert.Equal(t, 50.0, engagementSubScore(videos))
	})

	t.Run("only zero view videos score zero", func(t *testing.T) {
		videos := []model.VideoRecord{{ViewCount: 0, LikeCount: 5}}
		assert.Zero(t, engagementSubScore(videos))
	})
}

func TestGrowthSubScore(t *testing.T) {
	makeVideos := func(recentViews, olderViews int64) []model.VideoRecord {
		videos := make([]model.VideoRecord, 0, 10)
		for i := 0; i < 5; i++ {
			videos = append(videos, model.VideoRecord{
				PublishedAt: fmt.Sprintf("2024-02-%02dT00:00:00Z", i+1),
				ViewCount:   recentViews,
			})
		}
		for i := 0; i < 5; i++ {
			videos = append(videos, model.VideoRecord{
				PublishedAt: fmt.Sprintf("2024-01-%02dT00:00:00Z", i+1),
				ViewCount:   olderViews,
			})
		}
		return videos
	}

	t.Run("fewer than ten videos is neutral", func(t *testing.T) {
		videos := makeVideos(100, 100)[:9]
		assert.Equal(t, 50.0, growthSubScore(videos))
	})

	t.Run("flat views score neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, growthSubScore(makeVideos(1000, 1000)))
	})

	t.Run("doubling views clamps at 100", func(t *testing.T) {
		assert.Equal(t, 100.0, growthSubScore(makeVideos(2000, 1000)))
	})

	t.Run("collapse clamps at 0", func(t *testing.T) {
		assert.Equal(t, 0.0, growthSubScore(makeVideos(100, 1000)))
	})

	t.Run("older window with zero views is neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, growthSubScore(makeVideos(5000, 0)))
	})

	t.Run("input order does not matter", func(t *testing.T) {
		videos := makeVideos(2000, 1000)
		shuffled := []model.VideoRecord{videos[7], videos[2], videos[9], videos[0], videos[4], videos[1], videos[3], videos[8], videos[6], videos[5]}
		assert.Equal(t, growthSubScore(videos), growthSubScore(shuffled))
	})
}

func TestSentimentSubScore(t *testing.T) {
	t.Run("no comments is neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, sentimentSubScore(nil))
	})

	t.Run("half positive saturates", func(t *testing.T) {
		comments := []model.CommentRecord{
			{Text: "This is amazing"},
			{Text: "meh"},
		}
		assert.Equal(t, 100.0, sentimentSubScore(comments))
	})

	t.Run("keyword match is case insensitive", func(t *testing.T) {
		comments := []model.CommentRecord{
			{Text: "LOVE IT"},
			{Text: "terrible"},
			{Text: "nothing special"},
			{Text: "boring"},
		}
		// 1 of 4 positive -> 25% * 2 = 50.
		assert.Equal(t, 50.0, sentimentSubScore(comments))
	})

	t.Run("no positives scores zero", func(t *testing.T) {
		comments := []model.CommentRecord{{Text: "bad"}, {Text: "worse"}}
		assert.Zero(t, sentimentSubScore(comments))
	})
}
