// Package transcript selects and normalizes video transcripts, falling
// back from manually-created to auto-generated to any available language.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/creatorpulse/youtube-analyzer/model"
)

var (
	// ErrDisabled means the video has captions turned off entirely.
	ErrDisabled = errors.New("transcripts disabled for video")

	// ErrNotFound means captions are enabled but no transcript exists.
	ErrNotFound = errors.New("no transcript found")
)

// Track describes one available transcript for a video.
type Track struct {
	Language     string
	LanguageCode string
	Generated    bool
	BaseURL      string
}

// Source lists available transcripts and fetches caption payloads. List
// returns ErrDisabled or ErrNotFound for the expected-empty cases.
type Source interface {
	List(ctx context.Context, videoID string) ([]Track, error)
	Fetch(ctx context.Context, track Track) (any, error)
}

// Resolver applies the manual -> generated -> any-available fallback chain
// over a Source and normalizes whatever comes back into one record shape.
type Resolver struct {
	source Source
}

// NewResolver builds a Resolver over the given source.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Get returns the best available transcript for a video, or nil when none
// exists. Missing transcripts are an expected outcome and produce a nil
// record with a nil error; only transport-level failures surface as errors.
func (r *Resolver) Get(ctx context.Context, videoID string, preferredLanguages []string) (*model.TranscriptRecord, error) {
	tracks, err := r.source.List(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrDisabled) || errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("video_id", videoID).Msg("No transcript available")
			return nil, nil
		}
		return nil, fmt.Errorf("listing transcripts for %s: %w", videoID, err)
	}

	track, ok := pick(tracks, preferredLanguages)
	if !ok {
		log.Warn().Str("video_id", videoID).Msg("No transcript found for video")
		return nil, nil
	}

	payload, err := r.source.Fetch(ctx, track)
	if err != nil {
		log.Warn().Err(err).
			Str("video_id", videoID).
			Str("language_code", track.LanguageCode).
			Msg("Failed to fetch transcript")
		return nil, nil
	}

	return normalize(videoID, track, payload), nil
}

// pick applies the fallback order: manual in a preferred language, then
// generated in a preferred language, then the first track in any language.
func pick(tracks []Track, preferred []string) (Track, bool) {
	if len(tracks) == 0 {
		return Track{}, false
	}
	for _, lang := range preferred {
		for _, t := range tracks {
			if !t.Generated && t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, lang := range preferred {
		for _, t := range tracks {
			if t.Generated && t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// Some content is better than none for theme analysis, so a language
	// mismatch is accepted as the last resort.
	return tracks[0], true
}

// normalize flattens the fetched payload into the record shape. An
// unrecognized payload degrades to its string form with empty segments
// rather than failing.
func normalize(videoID string, track Track, payload any) *model.TranscriptRecord {
	rec := &model.TranscriptRecord{
		VideoID:      videoID,
		Language:     track.Language,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.Generated,
	}
	if rec.Language == "" {
		rec.Language = "unknown"
	}
	if rec.LanguageCode == "" {
		rec.LanguageCode = "unknown"
	}

	if segments, ok := payload.([]model.TranscriptSegment); ok {
		texts := make([]string, 0, len(segments))
		for _, s := range segments {
			if s.Text != "" {
				texts = append(texts, s.Text)
			}
		}
		rec.FullText = strings.Join(texts, " ")
		rec.Segments = segments
		return rec
	}

	rec.FullText = fmt.Sprint(payload)
	return rec
}
