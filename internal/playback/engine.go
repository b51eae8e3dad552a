// Package playback implements the playback engine: a transport state machine
// over a playlist, driving a blocking playback runner and a position sampler
// per cycle.
//
// Every command that starts or ends a playback cycle mints a new generation
// token. Runners capture the token of their cycle and discard their
// completion when it no longer matches, so at most one completion per token
// is ever acted upon.
package playback

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/moodplayer/internal/player"
	"github.com/llehouerou/moodplayer/internal/playlist"
)

// Default engine settings.
const (
	DefaultVolume         = 80.0
	DefaultSampleInterval = time.Second
)

// Verify Engine implements Service at compile time.
var _ Service = (*Engine)(nil)

// Engine is the playback engine. All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	backend        player.Backend
	log            zerolog.Logger
	randIntn       func(n int) int
	sampleInterval time.Duration

	playlist *playlist.Playlist
	index    int
	direct   *playlist.Track // set while a file is played by path
	shuffle  bool
	repeat   bool
	mood     Mood
	volume   float64

	handle  player.Handle
	state   State
	stopped bool

	token       atomic.Uint64
	currentTime atomic.Int64

	runCancel     context.CancelFunc
	samplerCancel context.CancelFunc
	wg            sync.WaitGroup
	closed        bool

	subs       []*Subscription
	subsClosed bool
	subsMu     sync.RWMutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithRand sets the index picker used by shuffle. It must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(e *Engine) {
		if intn != nil {
			e.randIntn = intn
		}
	}
}

// WithVolume sets the initial volume percentage.
func WithVolume(v float64) Option {
	return func(e *Engine) { e.volume = clampVolume(v) }
}

// WithSampleInterval sets the position sampler period.
func WithSampleInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.sampleInterval = d
		}
	}
}

// New creates a playback engine driving the given backend.
func New(backend player.Backend, opts ...Option) *Engine {
	e := &Engine{
		backend:        backend,
		log:            zlog.Logger,
		randIntn:       rand.IntN,
		sampleInterval: DefaultSampleInterval,
		volume:         DefaultVolume,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With().Str("component", "playback").Logger()
	return e
}

// SetPlaylist makes p the current playlist and resets the index to 0.
// Nil is ignored. Setting the current playlist again keeps the index.
func (e *Engine) SetPlaylist(p *playlist.Playlist) {
	if p == nil {
		e.log.Warn().Msg("set playlist: nil playlist ignored")
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if p == e.playlist {
		return
	}
	e.playlist = p
	e.index = 0
	e.log.Debug().Str("playlist", p.Name()).Int("tracks", p.Len()).Msg("playlist set")
}

// Playlist returns the current playlist, or nil.
func (e *Engine) Playlist() *playlist.Playlist {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playlist
}

// SetShuffle enables or disables shuffle. Loaded audio is not affected.
func (e *Engine) SetShuffle(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shuffle == on {
		return
	}
	e.shuffle = on
	e.emitModeLocked()
}

// Shuffle reports whether shuffle is enabled.
func (e *Engine) Shuffle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shuffle
}

// SetRepeat enables or disables playlist repeat. Loaded audio is not affected.
func (e *Engine) SetRepeat(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.repeat == on {
		return
	}
	e.repeat = on
	e.emitModeLocked()
}

// Repeat reports whether playlist repeat is enabled.
func (e *Engine) Repeat() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repeat
}

// SetSelectedMood records the selected mood.
func (e *Engine) SetSelectedMood(m Mood) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mood == m {
		return
	}
	e.mood = m
	e.emit(func(s *Subscription) { send(s.moodCh, MoodChange{Mood: m}) })
}

// SelectedMood returns the selected mood.
func (e *Engine) SelectedMood() Mood {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mood
}

// State returns the current playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsPlaying reports whether the engine is in the Playing state.
func (e *Engine) IsPlaying() bool {
	return e.State() == StatePlaying
}

// CurrentTrack returns the track of the current cycle, or the track at the
// current index when nothing is loaded. Returns nil without a playlist.
func (e *Engine) CurrentTrack() *playlist.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTrackLocked()
}

func (e *Engine) currentTrackLocked() *playlist.Track {
	if e.direct != nil {
		return e.direct
	}
	if e.playlist == nil {
		return nil
	}
	return e.playlist.Track(e.index)
}

// CurrentIndex returns the current playlist index.
func (e *Engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// CurrentTime returns the reported playback time in seconds.
func (e *Engine) CurrentTime() int {
	return int(e.currentTime.Load())
}

// CurrentPositionSeconds returns the backend's position of the loaded
// handle in seconds, or 0 when nothing is loaded.
func (e *Engine) CurrentPositionSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionSecondsLocked()
}

func (e *Engine) positionSecondsLocked() int {
	if e.handle == nil {
		return 0
	}
	ms, err := e.backend.Position(e.handle)
	if err != nil {
		e.log.Warn().Err(err).Msg("read position")
		return 0
	}
	return ms / 1000
}

// CurrentTrackLengthSeconds returns the length of the current track in
// seconds, or 0 when unknown.
func (e *Engine) CurrentTrackLengthSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t := e.currentTrackLocked(); t != nil {
		return t.Length()
	}
	return 0
}

// Generation returns the current generation token.
func (e *Engine) Generation() uint64 {
	return e.token.Load()
}

// Subscribe creates a new event subscription. Subscriptions are closed by
// Close; one created after Close is returned already closed.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	if e.subsClosed {
		sub.close()
		return sub
	}
	e.subs = append(e.subs, sub)
	return sub
}

func (e *Engine) emit(f func(*Subscription)) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		f(sub)
	}
}

func (e *Engine) setStateLocked(s State) {
	if e.state == s {
		return
	}
	prev := e.state
	e.state = s
	e.emit(func(sub *Subscription) { send(sub.stateCh, StateChange{Previous: prev, Current: s}) })
}

func (e *Engine) setTime(sec int) {
	if e.currentTime.Swap(int64(sec)) == int64(sec) {
		return
	}
	e.emit(func(sub *Subscription) { send(sub.timeCh, TimeChange{Seconds: sec}) })
}

func (e *Engine) emitModeLocked() {
	ev := ModeChange{Shuffle: e.shuffle, Repeat: e.repeat}
	e.emit(func(sub *Subscription) { send(sub.modeCh, ev) })
}

func (e *Engine) emitError(op, path string, err error) {
	ev := ErrorEvent{Op: op, Path: path, Err: err}
	e.emit(func(sub *Subscription) { send(sub.errorCh, ev) })
}

// Close stops playback, waits for background goroutines and closes all
// subscriptions. Commands issued after Close are ignored.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.stopLocked()
	e.mu.Unlock()

	e.wg.Wait()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsClosed = true
	e.subsMu.Unlock()

	e.log.Debug().Msg("engine closed")
	return nil
}
