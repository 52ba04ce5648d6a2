// Package analysis derives summary statistics and the viral score from a
// finished collection. Everything here is a pure function of the dataset.
package analysis

import (
	"sort"

	"github.com/creatorpulse/youtube-analyzer/model"
)

// topCategoryCount caps the category histogram at the most frequent five.
const topCategoryCount = 5

// BuildSummary computes the cross-cutting statistics over the merged
// collections. This is the single authoritative place these numbers are
// derived; per-video engagement display elsewhere must use the same
// zero-view exclusion rule.
func BuildSummary(result *model.CollectionResult) model.SummaryStats {
	summary := model.SummaryStats{
		ChannelsAnalyzed: len(result.Channels),
		TotalVideos:      len(result.Videos),
		TotalComments:    len(result.Comments),
		TotalTranscripts: len(result.Transcripts),
		TopCategories:    map[string]int{},
		DateRange:        model.DateRange{Start: "N/A", End: "N/A"},
	}

	for _, v := range result.Videos {
		summary.TotalViews += v.ViewCount
		summary.TotalLikes += v.LikeCount
	}

	// Videos with zero views are excluded from the average entirely, not
	// counted as 0%.
	var totalEngagement float64
	var validVideos int
	for _, v := range result.Videos {
		if rate, ok := v.EngagementRate(); ok {
			totalEngagement += rate
			validVideos++
		}
	}
	if validVideos > 0 {
		summary.AvgEngagementRate = totalEngagement / float64(validVideos)
	}

	var dates []string
	for _, v := range result.Videos {
		if v.PublishedAt != "" {
			dates = append(dates, v.PublishedAt)
		}
	}
	if len(dates) > 0 {
		sort.Strings(dates)
		summary.DateRange = model.DateRange{
			Start: datePart(dates[0]),
			End:   datePart(dates[len(dates)-1]),
		}
	}

	summary.TopCategories = topCategories(result.Videos)
	return summary
}

// datePart truncates an ISO-8601 timestamp to its date portion.
func datePart(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}

func topCategories(videos []model.VideoRecord) map[string]int {
	counts := map[string]int{}
	for _, v := range videos {
		counts[v.CategoryID]++
	}

	type entry struct {
		category string
		count    int
	}
	entries := make([]entry, 0, len(counts))
	for category, count := range counts {
		entries = append(entries, entry{category, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].category < entries[j].category
	})

	top := map[string]int{}
	for i, e := range entries {
		if i >= topCategoryCount {
			break
		}
		top[e.category] = e.count
	}
	return top
}
