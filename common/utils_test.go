package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()

	assert.Len(t, id, 14)
	parsed, err := time.Parse("20060102150405", id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestReadURLsFromFile(t *testing.T) {
	t.Run("skips blanks and comments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "urls.txt")
		content := `# seed list
https://www.youtube.com/@creator

https://www.youtube.com/watch?v=dQw4w9WgXcQ
  # trailing comment
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		urls, err := ReadURLsFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.youtube.com/@creator",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}, urls)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := ReadURLsFromFile(filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})
}
