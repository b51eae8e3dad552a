//go:build linux

package notify

import "github.com/llehouerou/moodplayer/internal/mpris"

// FindAlbumArtPath returns the path to a cover image next to the track, if any.
func FindAlbumArtPath(trackPath string) string {
	return mpris.FindAlbumArt(trackPath)
}
