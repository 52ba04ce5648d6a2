package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/creatorpulse/youtube-analyzer/model"
)

const (
	playerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	innerTubeClientName    = "WEB"
	innerTubeClientVersion = "2.20240101.00.00"
)

// InnerTubeSource lists caption tracks through the InnerTube player
// endpoint and downloads them in the json3 timedtext format. No API key
// is consumed, so transcripts never touch the Data API quota.
type InnerTubeSource struct {
	httpClient *http.Client
}

// NewInnerTubeSource builds the production transcript source.
func NewInnerTubeSource() *InnerTubeSource {
	return &InnerTubeSource{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type playerRequest struct {
	Context struct {
		Client struct {
			ClientName    string `json:"clientName"`
			ClientVersion string `json:"clientVersion"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

type playerResponse struct {
	Captions *struct {
		Renderer *struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

// List returns the caption tracks available for a video. A missing
// captions section maps to ErrDisabled, an empty track list to ErrNotFound.
func (s *InnerTubeSource) List(ctx context.Context, videoID string) ([]Track, error) {
	var reqBody playerRequest
	reqBody.Context.Client.ClientName = innerTubeClientName
	reqBody.Context.Client.ClientVersion = innerTubeClientVersion
	reqBody.VideoID = videoID

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding player request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, playerEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player request for %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player request for %s: status %d", videoID, resp.StatusCode)
	}

	var parsed playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding player response for %s: %w", videoID, err)
	}

	if parsed.Captions == nil || parsed.Captions.Renderer == nil {
		return nil, ErrDisabled
	}
	if len(parsed.Captions.Renderer.CaptionTracks) == 0 {
		return nil, ErrNotFound
	}

	tracks := make([]Track, 0, len(parsed.Captions.Renderer.CaptionTracks))
	for _, ct := range parsed.Captions.Renderer.CaptionTracks {
		tracks = append(tracks, Track{
			Language:     ct.Name.SimpleText,
			LanguageCode: ct.LanguageCode,
			Generated:    ct.Kind == "asr",
			BaseURL:      ct.BaseURL,
		})
	}
	return tracks, nil
}

type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Fetch downloads a caption track and converts its events into ordered
// transcript segments.
func (s *InnerTubeSource) Fetch(ctx context.Context, track Track) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL+"&fmt=json3", nil)
	if err != nil {
		return nil, fmt.Errorf("building timedtext request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext request: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading timedtext body: %w", err)
	}

	var parsed timedTextResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Unrecognized track format; hand the raw body to the resolver,
		// which degrades it to plain text.
		return string(body), nil
	}

	segments := make([]model.TranscriptSegment, 0, len(parsed.Events))
	for _, event := range parsed.Events {
		var text string
		for _, seg := range event.Segs {
			text += seg.UTF8
		}
		if text == "" {
			continue
		}
		segments = append(segments, model.TranscriptSegment{
			Text:     text,
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}
	return segments, nil
}
