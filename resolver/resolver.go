// Package resolver classifies YouTube URLs into video or channel targets.
package resolver

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Kind is the classification of a resolved URL.
type Kind string

const (
	KindVideo   Kind = "video"
	KindChannel Kind = "channel"
	KindUnknown Kind = "unknown"
)

// Target is the result of resolving one input URL. ID is empty when the
// URL could not be resolved; callers skip such URLs rather than aborting
// the batch.
type Target struct {
	Kind Kind
	ID   string
}

// ChannelSearcher resolves a handle or username to a real channel ID via a
// single best-effort search call. An empty result with nil error means the
// search found nothing.
type ChannelSearcher interface {
	SearchChannelID(ctx context.Context, query string) (string, error)
}

var videoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`watch\?v=([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
}

var (
	channelIDPattern = regexp.MustCompile(`youtube\.com/channel/([a-zA-Z0-9_-]+)`)
	customPattern    = regexp.MustCompile(`youtube\.com/c/([a-zA-Z0-9_-]+)`)
	handlePattern    = regexp.MustCompile(`youtube\.com/@([a-zA-Z0-9._-]+)`)
	userPattern      = regexp.MustCompile(`youtube\.com/user/([a-zA-Z0-9_-]+)`)
)

// Resolver turns raw URL strings into Targets. The searcher is only
// consulted for /user/ and /@ forms, which carry names rather than IDs.
type Resolver struct {
	searcher ChannelSearcher
}

// New creates a Resolver backed by the given channel searcher.
func New(searcher ChannelSearcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// ExtractVideoID pulls an 11-character video ID out of a URL. First
// matching pattern wins; the downstream API call is the real validator.
func ExtractVideoID(rawURL string) string {
	for _, p := range videoPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	if host == "www.youtube.com" || host == "youtube.com" {
		if v := parsed.Query().Get("v"); len(v) == 11 {
			return v
		}
	}
	return ""
}

// Resolve classifies a URL and resolves it to a concrete video or channel
// ID. Handles and usernames are resolved through the searcher; when that
// search comes up empty the Target has an empty ID.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) Target {
	rawURL = strings.TrimSpace(rawURL)

	if m := channelIDPattern.FindStringSubmatch(rawURL); m != nil {
		return Target{Kind: KindChannel, ID: m[1]}
	}
	if m := customPattern.FindStringSubmatch(rawURL); m != nil {
		return Target{Kind: KindChannel, ID: m[1]}
	}
	for _, p := range []*regexp.Regexp{handlePattern, userPattern} {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			id, err := r.lookupChannelID(ctx, m[1])
			if err != nil {
				log.Warn().Err(err).Str("url", rawURL).Msg("Failed to resolve channel handle")
				return Target{Kind: KindChannel}
			}
			return Target{Kind: KindChannel, ID: id}
		}
	}

	if id := ExtractVideoID(rawURL); id != "" {
		return Target{Kind: KindVideo, ID: id}
	}

	return Target{Kind: KindUnknown}
}

func (r *Resolver) lookupChannelID(ctx context.Context, name string) (string, error) {
	if r.searcher == nil {
		return "", fmt.Errorf("no channel searcher configured")
	}
	name = strings.TrimPrefix(name, "@")
	id, err := r.searcher.SearchChannelID(ctx, name)
	if err != nil {
		return "", fmt.Errorf("channel search for %q: %w", name, err)
	}
	if id == "" {
		log.Warn().Str("name", name).Msg("Channel search returned no results")
	}
	return id, nil
}

// Validate reports whether a URL points at YouTube and, if so, whether it
// is a channel or a video URL.
func Validate(rawURL string) (bool, Kind) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, KindUnknown
	}

	switch parsed.Hostname() {
	case "youtube.com", "www.youtube.com", "youtu.be", "m.youtube.com":
	default:
		return false, KindUnknown
	}

	for _, marker := range []string{"/channel/", "/c/", "/@", "/user/"} {
		if strings.Contains(rawURL, marker) {
			return true, KindChannel
		}
	}
	if strings.Contains(rawURL, "/watch?v=") || strings.Contains(rawURL, "youtu.be/") {
		return true, KindVideo
	}
	return false, KindUnknown
}

var (
	channelURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`https?://(?:www\.)?youtube\.com/channel/[a-zA-Z0-9_-]+`),
		regexp.MustCompile(`https?://(?:www\.)?youtube\.com/c/[a-zA-Z0-9_-]+`),
		regexp.MustCompile(`https?://(?:www\.)?youtube\.com/@[a-zA-Z0-9._-]+`),
		regexp.MustCompile(`https?://(?:www\.)?youtube\.com/user/[a-zA-Z0-9_-]+`),
	}
	videoURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`https?://(?:www\.)?youtube\.com/watch\?v=[a-zA-Z0-9_-]+`),
		regexp.MustCompile(`https?://(?:www\.)?youtu\.be/[a-zA-Z0-9_-]+`),
	}
)

// ExtractURLsFromText pulls channel and video URLs out of free text,
// deduplicating while preserving first-seen order.
func ExtractURLsFromText(text string) (channelURLs, videoURLs []string) {
	seen := make(map[string]bool)
	for _, p := range channelURLPatterns {
		for _, m := range p.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				channelURLs = append(channelURLs, m)
			}
		}
	}
	for _, p := range videoURLPatterns {
		for _, m := range p.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				videoURLs = append(videoURLs, m)
			}
		}
	}
	return channelURLs, videoURLs
}
