package playlist

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Unknown is used for missing track metadata.
const Unknown = "unknown"

// Track represents a single audio file with its metadata.
// A track is identified by its pointer: the same file may appear twice in a
// playlist as two distinct tracks.
type Track struct {
	Path   string // file path for playback
	Title  string
	Artist string
	Album  string

	lengthSec atomic.Int64 // back-filled once the audio backend knows it
}

// NewTrack creates a track. Empty metadata fields are set to Unknown.
// The length starts at 0 and is only known after the first load.
func NewTrack(path, title, artist, album string) *Track {
	return &Track{
		Path:   path,
		Title:  orUnknown(title),
		Artist: orUnknown(artist),
		Album:  orUnknown(album),
	}
}

// Length returns the track length in seconds (0 if not yet known).
func (t *Track) Length() int {
	return int(t.lengthSec.Load())
}

// SetLength records the track length in seconds.
func (t *Track) SetLength(sec int) {
	t.lengthSec.Store(int64(max(sec, 0)))
}

func (t *Track) String() string {
	s := t.Title
	if s == "" || s == Unknown {
		s = t.Path
	}
	if t.Artist != "" && t.Artist != Unknown {
		s += " – " + t.Artist
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// Playlist holds a named, ordered collection of tracks.
// It is safe for concurrent use.
type Playlist struct {
	mu     sync.RWMutex
	name   string
	tracks []*Track
}

// New creates a new empty playlist.
func New(name string) *Playlist {
	return &Playlist{
		name:   name,
		tracks: make([]*Track, 0),
	}
}

// Name returns the playlist name.
func (p *Playlist) Name() string {
	return p.name
}

// Add appends tracks to the playlist. Nil tracks are ignored.
func (p *Playlist) Add(tracks ...*Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range tracks {
		if t != nil {
			p.tracks = append(p.tracks, t)
		}
	}
}

// Remove removes the first occurrence of the given track.
// Returns false if the track is not in the playlist.
func (p *Playlist) Remove(t *Track) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := slices.Index(p.tracks, t)
	if i < 0 {
		return false
	}
	p.tracks = slices.Delete(p.tracks, i, i+1)
	return true
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of the track list.
func (p *Playlist) Tracks() []*Track {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.tracks)
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return p.tracks[index]
}

// IndexOf returns the index of the given track, or -1 if absent.
func (p *Playlist) IndexOf(t *Track) int {
	if t == nil {
		return -1
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Index(p.tracks, t)
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tracks)
}
