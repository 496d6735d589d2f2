package imaging

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDataURL(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}

	t.Run("JPEG", func(t *testing.T) {
		url, err := DataURL(writeFile(t, "photo.JPG", payload))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
	})

	t.Run("GIF", func(t *testing.T) {
		url, err := DataURL(writeFile(t, "anim.gif", payload))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "data:image/gif;base64,"))
	})

	t.Run("UnknownExtensionFallsBackToPNG", func(t *testing.T) {
		url, err := DataURL(writeFile(t, "capture.webp", payload))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	})

	t.Run("PayloadRoundTrips", func(t *testing.T) {
		url, err := DataURL(writeFile(t, "pic.png", payload))
		require.NoError(t, err)

		_, encoded, found := strings.Cut(url, ";base64,")
		require.True(t, found)
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := DataURL(filepath.Join(t.TempDir(), "nope.png"))
		assert.Error(t, err)
	})
}

func TestTruncate(t *testing.T) {
	t.Run("ShortTextUntouched", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 10))
	})

	t.Run("ExactLengthUntouched", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 5))
	})

	t.Run("LongTextCutWithMarker", func(t *testing.T) {
		got := Truncate("hello world", 5)
		assert.Equal(t, "hello"+TruncationMarker, got)
	})

	t.Run("ZeroLimitDisables", func(t *testing.T) {
		assert.Equal(t, "hello world", Truncate("hello world", 0))
	})
}
