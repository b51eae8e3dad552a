// Package tags reads embedded metadata from audio files.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
)

// File extensions recognised by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
	ExtM4A  = ".m4a"
)

// Tag contains the metadata used to describe a track.
// Empty fields mean the file carries no value for them.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
}

// IsAudioFile returns true if the path has an extension the player can decode.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV:
		return true
	}
	return false
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// parseTrackNumber parses a track number string like "5" or "5/10".
func parseTrackNumber(s string) int {
	if s == "" {
		return 0
	}
	num, _, _ := strings.Cut(s, "/")
	n, _ := strconv.Atoi(strings.TrimSpace(num))
	return n
}
