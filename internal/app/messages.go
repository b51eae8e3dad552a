// Package app implements the terminal interface of the player.
package app

import (
	"time"

	"github.com/llehouerou/moodplayer/internal/playback"
	"github.com/llehouerou/moodplayer/internal/playlist"
)

// TickMsg is sent periodically so the view can poll the engine.
type TickMsg time.Time

// ErrorMsg carries an engine error event to the status line.
type ErrorMsg playback.ErrorEvent

// ServiceClosedMsg is sent when the engine closes its subscription.
type ServiceClosedMsg struct{}

// SourceLoadedMsg reports the result of loading a playlist source.
type SourceLoadedMsg struct {
	Source   string
	Playlist *playlist.Playlist
	Err      error
}
