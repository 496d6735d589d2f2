// Package imaging prepares local files for multimodal API requests.
package imaging

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TruncationMarker is appended when document text is cut to fit a
// model's context budget.
const TruncationMarker = "\n\n[Content truncated due to length...]"

// DataURL reads an image file and encodes it as a base64 data URL for
// transmission inside an image_url content part. The media type comes
// from the file extension; unknown extensions fall back to PNG.
func DataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	var mediaType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mediaType = "image/jpeg"
	case ".gif":
		mediaType = "image/gif"
	default:
		mediaType = "image/png"
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return "data:" + mediaType + ";base64," + encoded, nil
}

// Truncate cuts text to at most maxChars characters, appending the
// truncation marker when anything was dropped.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars] + TruncationMarker
}
