package playback

import "github.com/llehouerou/moodplayer/internal/playlist"

// Service defines the playback engine contract used by view layers.
//
// Transport commands never fail from the caller's point of view: problems are
// logged and published as ErrorEvent on subscriptions.
type Service interface {
	// Playlist
	SetPlaylist(p *playlist.Playlist)
	Playlist() *playlist.Playlist

	// Transport
	Play()
	PlayPath(path string)
	Pause()
	Resume()
	PlayOrResume()
	Stop()
	Skip()
	SkipBack()
	PlayTrack(t *playlist.Track)
	PlayTrackAtIndex(index int)
	SeekToSeconds(s int)

	// Modes
	SetShuffle(on bool)
	Shuffle() bool
	SetRepeat(on bool)
	Repeat() bool
	SetSelectedMood(m Mood)
	SelectedMood() Mood

	// Volume
	SetVolumePercent(v float64)
	VolumePercent() float64

	// State queries
	State() State
	IsPlaying() bool
	CurrentTrack() *playlist.Track
	CurrentIndex() int
	CurrentTime() int
	CurrentPositionSeconds() int
	CurrentTrackLengthSeconds() int
	Snapshot() Snapshot

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
