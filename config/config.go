// Package config provides configuration for collection runs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings for one collection run.
type Config struct {
	// APIKeys are the YouTube Data API keys rotated through on quota
	// errors, in order.
	APIKeys []string `yaml:"api_keys" json:"api_keys"`

	// Mode selects channel or video analysis ("channel" or "video").
	Mode string `yaml:"mode" json:"mode"`

	// Collection limits
	MaxVideosPerChannel int `yaml:"max_videos_per_channel" json:"max_videos_per_channel"`
	MaxCommentsPerVideo int `yaml:"max_comments_per_video" json:"max_comments_per_video"`

	// Optional record streams
	IncludeTranscripts bool `yaml:"include_transcripts" json:"include_transcripts"`
	IncludeComments    bool `yaml:"include_comments" json:"include_comments"`

	// TranscriptLanguages is the preference order for transcript lookup.
	TranscriptLanguages []string `yaml:"transcript_languages" json:"transcript_languages"`

	// Output configuration
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	CSVExport bool   `yaml:"csv_export" json:"csv_export"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Mode:                "channel",
		MaxVideosPerChannel: 20,
		MaxCommentsPerVideo: 50,
		IncludeTranscripts:  true,
		IncludeComments:     true,
		TranscriptLanguages: []string{"en"},
		OutputDir:           "output",
	}
}

// Load builds a Config from viper-bound flags and environment variables,
// on top of the defaults. API keys come from YOUTUBE_API_KEYS (or the
// api-keys flag) as a comma-separated list.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()

	if keys := v.GetString("api-keys"); keys != "" {
		cfg.APIKeys = SplitKeys(keys)
	}
	if mode := v.GetString("mode"); mode != "" {
		cfg.Mode = mode
	}
	if n := v.GetInt("max-videos"); n > 0 {
		cfg.MaxVideosPerChannel = n
	}
	if n := v.GetInt("max-comments"); n > 0 {
		cfg.MaxCommentsPerVideo = n
	}
	if v.IsSet("transcripts") {
		cfg.IncludeTranscripts = v.GetBool("transcripts")
	}
	if v.IsSet("comments") {
		cfg.IncludeComments = v.GetBool("comments")
	}
	if langs := v.GetString("languages"); langs != "" {
		cfg.TranscriptLanguages = SplitKeys(langs)
	}
	if dir := v.GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	cfg.CSVExport = v.GetBool("csv")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SplitKeys splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func SplitKeys(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.APIKeys) == 0 {
		return fmt.Errorf("at least one API key is required")
	}

	if c.Mode != "channel" && c.Mode != "video" {
		return fmt.Errorf("invalid mode '%s', must be one of: channel, video", c.Mode)
	}

	if c.MaxVideosPerChannel < 1 {
		return fmt.Errorf("max_videos_per_channel must be at least 1")
	}

	if c.MaxCommentsPerVideo < 1 {
		return fmt.Errorf("max_comments_per_video must be at least 1")
	}

	if len(c.TranscriptLanguages) == 0 && c.IncludeTranscripts {
		return fmt.Errorf("transcript_languages cannot be empty when transcripts are enabled")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	return nil
}
