package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/creatorpulse/youtube-analyzer/model"
)

// Component weights of the viral score.
const (
	weightViews       = 0.3
	weightEngagement  = 0.3
	weightGrowth      = 0.2
	weightConsistency = 0.1
	weightSentiment   = 0.1
)

// consistencySubScore is a fixed placeholder; upload cadence is not
// actually measured. Changing it would shift every score, so it stays.
const consistencySubScore = 70.0

// growthWindow is the number of recent videos compared against the next
// window of the same size.
const growthWindow = 5

// neutralSubScore is used when a component has too little data to judge.
const neutralSubScore = 50.0

var positiveKeywords = []string{"love", "great", "amazing", "best", "helpful", "thank"}

// ViralScore computes the 0-100 composite potential figure for a finished
// dataset: views 30%, engagement 30%, growth 20%, consistency 10%,
// sentiment 10%, rounded to one decimal place. A dataset with no videos
// scores exactly 0.
func ViralScore(result *model.CollectionResult) float64 {
	if len(result.Videos) == 0 {
		return 0
	}

	total := weightViews*viewsSubScore(result.Videos) +
		weightEngagement*engagementSubScore(result.Videos) +
		weightGrowth*growthSubScore(result.Videos) +
		weightConsistency*consistencySubScore +
		weightSentiment*sentimentSubScore(result.Comments)

	return math.Round(total*10) / 10
}

// viewsSubScore buckets the mean view count. The thresholds are part of
// the score's contract and must not drift.
func viewsSubScore(videos []model.VideoRecord) float64 {
	var total int64
	for _, v := range videos {
		total += v.ViewCount
	}
	avg := float64(total) / float64(len(videos))

	switch {
	case avg >= 1_000_000:
		return 100
	case avg >= 500_000:
		return 80
	case avg >= 100_000:
		return 60
	case avg >= 50_000:
		return 40
	default:
		return 20
	}
}

func engagementSubScore(videos []model.VideoRecord) float64 {
	var total float64
	var valid int
	for _, v := range videos {
		if rate, ok := v.EngagementRate(); ok {
			total += rate
			valid++
		}
	}
	if valid == 0 {
		return 0
	}
	return math.Min(total/float64(valid)*10, 100)
}

// growthSubScore compares the average views of the five most recent
// videos against the next five. Without both windows it stays neutral.
func growthSubScore(videos []model.VideoRecord) float64 {
	if len(videos) < 2*growthWindow {
		return neutralSubScore
	}

	byRecency := make([]model.VideoRecord, len(videos))
	copy(byRecency, videos)
	sort.SliceStable(byRecency, func(i, j int) bool {
		return byRecency[i].PublishedAt > byRecency[j].PublishedAt
	})

	recentAvg := avgViews(byRecency[:growthWindow])
	olderAvg := avgViews(byRecency[growthWindow : 2*growthWindow])
	if olderAvg == 0 {
		return neutralSubScore
	}

	growthRate := (recentAvg - olderAvg) / olderAvg * 100
	return math.Max(0, math.Min(growthRate+50, 100))
}

func avgViews(videos []model.VideoRecord) float64 {
	var total int64
	for _, v := range videos {
		total += v.ViewCount
	}
	return float64(total) / float64(len(videos))
}

// sentimentSubScore is the positive-comment share scaled so that half
// positive already saturates the score. No comments means neutral.
func sentimentSubScore(comments []model.CommentRecord) float64 {
	if len(comments) == 0 {
		return neutralSubScore
	}

	var positive int
	for _, c := range comments {
		text := strings.ToLower(c.Text)
		for _, keyword := range positiveKeywords {
			if strings.Contains(text, keyword) {
				positive++
				break
			}
		}
	}
	return math.Min(float64(positive)/float64(len(comments))*200, 100)
}
