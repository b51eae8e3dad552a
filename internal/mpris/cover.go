//go:build linux

package mpris

import (
	"os"
	"path/filepath"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
	"artwork.jpg", "artwork.png",
}

// FindAlbumArt returns the first cover image found next to the track, or ""
// when the folder has none. Only exact lowercase names are matched.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
