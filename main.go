package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/creatorpulse/youtube-analyzer/analysis"
	"github.com/creatorpulse/youtube-analyzer/client"
	"github.com/creatorpulse/youtube-analyzer/collector"
	"github.com/creatorpulse/youtube-analyzer/common"
	"github.com/creatorpulse/youtube-analyzer/config"
	"github.com/creatorpulse/youtube-analyzer/export"
	"github.com/creatorpulse/youtube-analyzer/transcript"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "youtube-analyzer",
		Short: "Collect and analyze YouTube channel and video data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd.Context(), v, args)
		},
	}

	flags := root.Flags()
	flags.String("api-keys", "", "Comma-separated YouTube Data API keys (or YOUTUBE_API_KEYS)")
	flags.String("mode", "channel", "Analysis mode: channel or video")
	flags.String("urls", "", "Comma-separated YouTube URLs to analyze")
	flags.String("url-file", "", "File with one YouTube URL per line")
	flags.Int("max-videos", 20, "Maximum videos to collect per channel")
	flags.Int("max-comments", 50, "Maximum comments to collect per video")
	flags.Bool("transcripts", true, "Collect transcripts")
	flags.Bool("comments", true, "Collect comments")
	flags.String("languages", "en", "Comma-separated transcript language preference")
	flags.String("output-dir", "output", "Directory for result files")
	flags.Bool("csv", false, "Also export videos as CSV")
	flags.Bool("debug", false, "Enable debug logging")

	if err := v.BindPFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}
	v.SetEnvPrefix("youtube")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return root
}

func runCollect(ctx context.Context, v *viper.Viper, args []string) error {
	if v.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	urls := config.SplitKeys(v.GetString("urls"))
	urls = append(urls, args...)
	if file := v.GetString("url-file"); file != "" {
		fromFile, err := common.ReadURLsFromFile(file)
		if err != nil {
			return fmt.Errorf("reading url file: %w", err)
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs provided, use --urls, --url-file or arguments")
	}

	runID := common.GenerateRunID()
	log.Info().Str("run_id", runID).Int("url_count", len(urls)).Msg("Starting analysis run")

	yt, err := client.New(ctx, cfg.APIKeys)
	if err != nil {
		return fmt.Errorf("creating youtube client: %w", err)
	}

	coll := collector.New(yt, transcript.NewResolver(transcript.NewInnerTubeSource()))

	// First signal stops at the next video boundary, second kills the run.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn().Msg("Interrupt received, finishing current item")
		coll.Stop()
	}()

	result, err := coll.Collect(ctx, collector.Request{
		URLs:                urls,
		Mode:                collector.Mode(cfg.Mode),
		MaxVideosPerChannel: cfg.MaxVideosPerChannel,
		MaxCommentsPerVideo: cfg.MaxCommentsPerVideo,
		IncludeTranscripts:  cfg.IncludeTranscripts,
		IncludeComments:     cfg.IncludeComments,
		PreferredLanguages:  cfg.TranscriptLanguages,
	})
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	path, err := export.WriteJSON(result, cfg.OutputDir, runID)
	if err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if cfg.CSVExport {
		if _, err := export.WriteVideosCSV(result, cfg.OutputDir, runID); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}

	log.Info().
		Str("file", path).
		Int("channels", result.Summary.ChannelsAnalyzed).
		Int("videos", result.Summary.TotalVideos).
		Float64("viral_score", analysis.ViralScore(result)).
		Msg("Analysis run complete")
	return nil
}
