package playback

import "github.com/llehouerou/moodplayer/internal/playlist"

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a new playback cycle starts on a track.
//
// Index is the playlist index, or -1 for a file played directly by path.
// Every play cycle emits one, even when the same track is replayed.
type TrackChange struct {
	Track *playlist.Track
	Index int
}

// TimeChange is emitted when the reported playback time changes.
type TimeChange struct {
	Seconds int
}

// VolumeChange is emitted when the volume percentage changes.
type VolumeChange struct {
	Percent float64
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Shuffle bool
	Repeat  bool
}

// MoodChange is emitted when the selected mood changes.
type MoodChange struct {
	Mood Mood
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Op   string // e.g. "play", "seek"
	Path string // track path if applicable
	Err  error
}

// Operations reported in ErrorEvent.Op.
const (
	OpLoad   = "load"
	OpPlay   = "play"
	OpPause  = "pause"
	OpSeek   = "seek"
	OpVolume = "volume"
)
