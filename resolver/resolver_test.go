package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSearcher struct {
	results map[string]string
	err     error
	calls   []string
}

func (f *fakeSearcher) SearchChannelID(_ context.Context, query string) (string, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return "", f.err
	}
	return f.results[query], nil
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "standard watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short URL",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "embed URL",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL with extra params",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "not a video URL",
			url:  "https://example.com/page",
			want: "",
		},
		{
			name: "empty string",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVideoID(tt.url))
		})
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("channel ID URL resolves without search", func(t *testing.T) {
		searcher := &fakeSearcher{}
		r := New(searcher)

		target := r.Resolve(ctx, "https://www.youtube.com/channel/UC123abc")

		assert.Equal(t, KindChannel, target.Kind)
		assert.Equal(t, "UC123abc", target.ID)
		assert.Empty(t, searcher.calls)
	})

	t.Run("handle URL resolves through searcher", func(t *testing.T) {
		searcher := &fakeSearcher{results: map[string]string{"somecreator": "UCresolved"}}
		r := New(searcher)

		target := r.Resolve(ctx, "https://www.youtube.com/@somecreator")

		assert.Equal(t, KindChannel, target.Kind)
		assert.Equal(t, "UCresolved", target.ID)
		assert.Equal(t, []string{"somecreator"}, searcher.calls)
	})

	t.Run("user URL resolves through searcher", func(t *testing.T) {
		searcher := &fakeSearcher{results: map[string]string{"legacyname": "UClegacy"}}
		r := New(searcher)

		target := r.Resolve(ctx, "https://www.youtube.com/user/legacyname")

		assert.Equal(t, KindChannel, target.Kind)
		assert.Equal(t, "UClegacy", target.ID)
	})

	t.Run("handle search failure yields empty ID not panic", func(t *testing.T) {
		searcher := &fakeSearcher{err: errors.New("api unavailable")}
		r := New(searcher)

		target := r.Resolve(ctx, "https://www.youtube.com/@broken")

		assert.Equal(t, KindChannel, target.Kind)
		assert.Empty(t, target.ID)
	})

	t.Run("handle search with no results yields empty ID", func(t *testing.T) {
		searcher := &fakeSearcher{results: map[string]string{}}
		r := New(searcher)

		target := r.Resolve(ctx, "https://www.youtube.com/@nobody")

		assert.Equal(t, KindChannel, target.Kind)
		assert.Empty(t, target.ID)
	})

	t.Run("video URL resolves to video target", func(t *testing.T) {
		r := New(&fakeSearcher{})

		target := r.Resolve(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

		assert.Equal(t, KindVideo, target.Kind)
		assert.Equal(t, "dQw4w9WgXcQ", target.ID)
	})

	t.Run("unrecognized URL is unknown", func(t *testing.T) {
		r := New(&fakeSearcher{})

		target := r.Resolve(ctx, "https://example.com/watch")

		assert.Equal(t, KindUnknown, target.Kind)
		assert.Empty(t, target.ID)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantValid bool
		wantKind  Kind
	}{
		{"channel url", "https://www.youtube.com/channel/UCabc", true, KindChannel},
		{"handle url", "https://www.youtube.com/@creator", true, KindChannel},
		{"custom url", "https://www.youtube.com/c/creator", true, KindChannel},
		{"user url", "https://www.youtube.com/user/creator", true, KindChannel},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true, KindVideo},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", true, KindVideo},
		{"non-youtube host", "https://vimeo.com/12345", false, KindUnknown},
		{"youtube home page", "https://www.youtube.com/", false, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, kind := Validate(tt.url)
			assert.Equal(t, tt.wantValid, valid)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestExtractURLsFromText(t *testing.T) {
	text := `Check out https://www.youtube.com/@creator and the video
https://www.youtube.com/watch?v=dQw4w9WgXcQ plus
https://www.youtube.com/@creator again and https://youtu.be/abc123def45.`

	channels, videos := ExtractURLsFromText(text)

	assert.Equal(t, []string{"https://www.youtube.com/@creator"}, channels)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/abc123def45",
	}, videos)
}
