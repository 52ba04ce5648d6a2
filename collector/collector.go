// Package collector runs one collection pass: it resolves input URLs,
// drives the paginated fetchers and the transcript resolver, and folds
// every record stream into a single aggregated result.
package collector

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/creatorpulse/youtube-analyzer/analysis"
	"github.com/creatorpulse/youtube-analyzer/model"
	"github.com/creatorpulse/youtube-analyzer/resolver"
)

// Mode selects how channel URLs are treated in a run.
type Mode string

const (
	// ModeChannel collects channel statistics plus each channel's recent
	// uploads; standalone video URLs in the batch are still collected.
	ModeChannel Mode = "channel"

	// ModeVideo collects only the video URLs in the batch.
	ModeVideo Mode = "video"
)

// videoPace spaces per-video processing to stay under per-second rate
// limits.
const videoPace = 500 * time.Millisecond

// Default request values matching the reference collection behavior.
const (
	DefaultMaxVideosPerChannel = 20
	DefaultMaxCommentsPerVideo = 50
)

// Request describes one analysis run.
type Request struct {
	URLs                []string
	Mode                Mode
	MaxVideosPerChannel int
	MaxCommentsPerVideo int
	IncludeTranscripts  bool
	IncludeComments     bool
	PreferredLanguages  []string
}

// YouTubeClient is the client surface the collector drives. It doubles as
// the resolver's channel searcher.
type YouTubeClient interface {
	SearchChannelID(ctx context.Context, query string) (string, error)
	ChannelInfo(ctx context.Context, channelID, inputURL string) (*model.ChannelRecord, error)
	ChannelVideos(ctx context.Context, channelID string, maxVideos int) ([]model.VideoRecord, error)
	VideoDetails(ctx context.Context, videoID string) (*model.VideoRecord, error)
	VideoComments(ctx context.Context, videoID string, maxComments int) ([]model.CommentRecord, error)
}

// TranscriptResolver yields the best available transcript for a video, or
// nil when none exists.
type TranscriptResolver interface {
	Get(ctx context.Context, videoID string, preferredLanguages []string) (*model.TranscriptRecord, error)
}

// Collector owns one run's client, resolver and pacing state. A Collector
// runs on a single worker goroutine; Stop may be called from any
// goroutine and takes effect at the next URL or video boundary.
type Collector struct {
	client      YouTubeClient
	transcripts TranscriptResolver
	resolver    *resolver.Resolver
	limiter     *rate.Limiter
	stopped     atomic.Bool
}

// New builds a collector over the given client and transcript resolver.
func New(client YouTubeClient, transcripts TranscriptResolver) *Collector {
	return &Collector{
		client:      client,
		transcripts: transcripts,
		resolver:    resolver.New(client),
		limiter:     rate.NewLimiter(rate.Every(videoPace), 1),
	}
}

// Stop requests cancellation. In-flight API calls finish; the run aborts
// at the next checkpoint and returns whatever was aggregated so far.
func (c *Collector) Stop() {
	c.stopped.Store(true)
}

func (c *Collector) stopRequested(ctx context.Context) bool {
	return c.stopped.Load() || ctx.Err() != nil
}

// Collect executes one run over the request's URLs. Unresolvable URLs and
// per-item failures are logged and skipped; the result always carries
// everything collected before any failure or stop signal.
func (c *Collector) Collect(ctx context.Context, req Request) (*model.CollectionResult, error) {
	if len(req.URLs) == 0 {
		return nil, fmt.Errorf("no URLs provided")
	}
	if req.Mode == "" {
		req.Mode = ModeChannel
	}
	if req.MaxVideosPerChannel <= 0 {
		req.MaxVideosPerChannel = DefaultMaxVideosPerChannel
	}
	if req.MaxCommentsPerVideo <= 0 {
		req.MaxCommentsPerVideo = DefaultMaxCommentsPerVideo
	}
	if len(req.PreferredLanguages) == 0 {
		req.PreferredLanguages = []string{"en"}
	}

	result := &model.CollectionResult{
		CollectionID: uuid.NewString(),
	}

	log.Info().
		Str("collection_id", result.CollectionID).
		Int("url_count", len(req.URLs)).
		Str("mode", string(req.Mode)).
		Msg("Starting collection run")

	for _, rawURL := range req.URLs {
		if c.stopRequested(ctx) {
			log.Warn().Str("url", rawURL).Msg("Stop requested, aborting remaining URLs")
			break
		}

		target := c.resolver.Resolve(ctx, rawURL)
		switch {
		case target.Kind == resolver.KindChannel && target.ID != "":
			if req.Mode != ModeChannel {
				log.Warn().Str("url", rawURL).Msg("Skipping channel URL in video mode")
				continue
			}
			c.collectChannel(ctx, req, rawURL, target.ID, result)
		case target.Kind == resolver.KindVideo && target.ID != "":
			c.collectVideo(ctx, req, target.ID, result)
		default:
			log.Warn().Str("url", rawURL).Msg("Could not resolve URL, skipping")
		}
	}

	// The merge timestamp, not any fetch's timestamp.
	result.CollectionDate = time.Now()
	result.Summary = analysis.BuildSummary(result)

	log.Info().
		Str("collection_id", result.CollectionID).
		Int("channels", len(result.Channels)).
		Int("videos", len(result.Videos)).
		Int("comments", len(result.Comments)).
		Int("transcripts", len(result.Transcripts)).
		Msg("Collection run finished")
	return result, nil
}

// collectChannel gathers channel statistics and then processes the
// channel's recent uploads one by one.
func (c *Collector) collectChannel(ctx context.Context, req Request, inputURL, channelID string, result *model.CollectionResult) {
	log.Info().Str("url", inputURL).Str("channel_id", channelID).Msg("Processing channel")

	info, err := c.client.ChannelInfo(ctx, channelID, inputURL)
	if err != nil {
		log.Error().Err(err).Str("channel_id", channelID).Msg("Failed to get channel info")
	} else if info != nil {
		result.Channels = append(result.Channels, *info)
	}

	videos, err := c.client.ChannelVideos(ctx, channelID, req.MaxVideosPerChannel)
	if err != nil {
		// Videos accumulated before the failure are still processed.
		log.Error().Err(err).Str("channel_id", channelID).Msg("Channel uploads fetch failed")
	}

	for i, video := range videos {
		if c.stopRequested(ctx) {
			log.Warn().Str("channel_id", channelID).Msg("Stop requested, aborting remaining videos")
			return
		}
		log.Info().
			Str("video_id", video.VideoID).
			Int("position", i+1).
			Int("total", len(videos)).
			Msg("Processing video")
		c.collectVideo(ctx, req, video.VideoID, result)
	}
}

// collectVideo enriches one video with full details and, when enabled,
// its transcript and comments. Each failure is logged and skipped so one
// bad video never aborts the run.
func (c *Collector) collectVideo(ctx context.Context, req Request, videoID string, result *model.CollectionResult) {
	details, err := c.client.VideoDetails(ctx, videoID)
	if err != nil {
		log.Error().Err(err).Str("video_id", videoID).Msg("Failed to get video details")
	} else if details != nil {
		result.Videos = append(result.Videos, *details)
	}

	if req.IncludeTranscripts {
		rec, err := c.transcripts.Get(ctx, videoID, req.PreferredLanguages)
		if err != nil {
			log.Error().Err(err).Str("video_id", videoID).Msg("Transcript lookup failed")
		} else if rec != nil {
			result.Transcripts = append(result.Transcripts, *rec)
		}
	}

	if req.IncludeComments {
		comments, err := c.client.VideoComments(ctx, videoID, req.MaxCommentsPerVideo)
		if err != nil {
			log.Error().Err(err).Str("video_id", videoID).Msg("Comment fetch incomplete")
		}
		result.Comments = append(result.Comments, comments...)
	}

	if err := c.limiter.Wait(ctx); err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Msg("Pacing wait interrupted")
	}
}
