package playback

import "github.com/llehouerou/moodplayer/internal/playlist"

// Snapshot is a consistent copy of the engine's observable state, meant for
// views that poll rather than subscribe.
type Snapshot struct {
	State      State
	Track      *playlist.Track
	Index      int
	Direct     bool // Track is a file played by path
	Playlist   string
	TimeSec    int
	LengthSec  int
	Volume     float64
	Shuffle    bool
	Repeat     bool
	Mood       Mood
	Generation uint64
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Snapshot{
		State:      e.state,
		Track:      e.currentTrackLocked(),
		Index:      e.index,
		Direct:     e.direct != nil,
		TimeSec:    int(e.currentTime.Load()),
		Volume:     e.volume,
		Shuffle:    e.shuffle,
		Repeat:     e.repeat,
		Mood:       e.mood,
		Generation: e.token.Load(),
	}
	if e.playlist != nil {
		s.Playlist = e.playlist.Name()
	}
	if s.Track != nil {
		s.LengthSec = s.Track.Length()
	}
	return s
}
