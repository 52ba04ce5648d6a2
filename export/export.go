// Package export writes finished collection results to disk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/creatorpulse/youtube-analyzer/model"
)

// WriteJSON writes the full collection result as an indented JSON file
// under dir and returns the file path. The directory is created if needed.
func WriteJSON(result *model.CollectionResult, dir, runID string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("youtube_analysis_%s.json", runID))
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing result file: %w", err)
	}

	log.Info().Str("file", path).Msg("Collection result written")
	return path, nil
}

// WriteVideosCSV writes the video records as a flat CSV under dir and
// returns the file path. Videos with zero views get a 0 engagement rate
// in the CSV; they are only excluded from aggregate averages.
func WriteVideosCSV(result *model.CollectionResult, dir, runID string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("youtube_videos_%s.csv", runID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"video_id", "channel_id", "title", "published_at", "duration",
		"view_count", "like_count", "comment_count", "engagement_rate", "category_id",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}

	for _, v := range result.Videos {
		engagement, _ := v.EngagementRate()
		row := []string{
			v.VideoID,
			v.ChannelID,
			v.Title,
			v.PublishedAt,
			v.Duration,
			strconv.FormatInt(v.ViewCount, 10),
			strconv.FormatInt(v.LikeCount, 10),
			strconv.FormatInt(v.CommentCount, 10),
			strconv.FormatFloat(engagement, 'f', 4, 64),
			v.CategoryID,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing csv row for %s: %w", v.VideoID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	log.Info().Str("file", path).Int("videos", len(result.Videos)).Msg("Video CSV written")
	return path, nil
}
