package playback

import (
	"github.com/llehouerou/moodplayer/internal/playlist"
)

// Play starts the track at the current index from the beginning. An invalid
// index is reset to 0. Any loaded audio is released first.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.playLocked()
}

func (e *Engine) playLocked() {
	if e.playlist == nil || e.playlist.Len() == 0 {
		e.log.Warn().Msg("play: no playlist or playlist is empty")
		return
	}
	if e.index < 0 || e.index >= e.playlist.Len() {
		e.index = 0
	}
	t := e.playlist.Track(e.index)
	if t == nil {
		e.log.Warn().Int("index", e.index).Msg("play: no track at index")
		return
	}
	e.direct = nil
	e.startCycleLocked(t, e.index)
}

// PlayPath plays a file outside the playlist. The current index is kept, and
// the natural end of the file stops playback.
func (e *Engine) PlayPath(path string) {
	if path == "" {
		e.log.Warn().Msg("play path: empty path")
		return
	}
	t := playlist.TrackFromFile(path)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.direct = t
	e.startCycleLocked(t, -1)
}

// startCycleLocked mints a token, swaps the loaded handle for t and launches
// the runner and sampler of the new cycle.
func (e *Engine) startCycleLocked(t *playlist.Track, index int) {
	token := e.token.Add(1)
	e.cancelRunLocked()
	e.stopSamplerLocked()
	e.releaseHandleLocked()

	h, err := e.backend.Load(t.Path)
	if err != nil {
		e.log.Error().Err(err).Str("path", t.Path).Msg("load track")
		e.stopped = true
		e.setTime(0)
		e.setStateLocked(StateStopped)
		e.emitError(OpLoad, t.Path, err)
		return
	}
	e.handle = h
	e.applyVolumeLocked()

	if ms, err := e.backend.Length(h); err != nil {
		e.log.Warn().Err(err).Str("path", t.Path).Msg("read track length")
	} else if ms > 0 {
		t.SetLength(ms / 1000)
	}

	e.stopped = false
	e.setTime(0)
	e.setStateLocked(StatePlaying)
	e.startSamplerLocked(e.positionSecondsLocked())
	e.startRunnerLocked(token, h)

	e.log.Info().
		Str("path", t.Path).
		Int("index", index).
		Uint64("token", token).
		Msg("playing")
	ev := TrackChange{Track: t, Index: index}
	e.emit(func(sub *Subscription) { send(sub.trackCh, ev) })
}

func (e *Engine) releaseHandleLocked() {
	if e.handle == nil {
		return
	}
	if err := e.backend.Release(e.handle); err != nil {
		e.log.Warn().Err(err).Str("path", e.handle.Path()).Msg("release audio handle")
	}
	e.handle = nil
}

// Pause halts output and keeps the reported time. It only has an effect
// while playing.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.state.CanPause() {
		return
	}
	e.token.Add(1)
	e.cancelRunLocked()
	if e.handle != nil {
		if err := e.backend.Pause(e.handle); err != nil {
			e.log.Error().Err(err).Str("path", e.handle.Path()).Msg("pause")
			e.emitError(OpPause, e.handle.Path(), err)
		}
	}
	e.stopSamplerLocked()
	e.setStateLocked(StatePaused)
}

// Resume continues a paused track from the backend's current position.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.resumeLocked()
}

func (e *Engine) resumeLocked() {
	if !e.state.CanResume() || e.handle == nil {
		return
	}
	token := e.token.Add(1)
	e.stopped = false
	e.setStateLocked(StatePlaying)
	e.startSamplerLocked(e.positionSecondsLocked())
	e.startRunnerLocked(token, e.handle)
	e.log.Debug().Uint64("token", token).Msg("resumed")
}

// PlayOrResume resumes when paused with a loaded track, otherwise plays.
func (e *Engine) PlayOrResume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.state == StatePaused && e.handle != nil {
		e.resumeLocked()
		return
	}
	e.playLocked()
}

// Stop releases the loaded audio and resets the reported time to 0.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	e.stopped = true
	e.token.Add(1)
	e.cancelRunLocked()
	e.releaseHandleLocked()
	e.stopSamplerLocked()
	e.setTime(0)
	e.setStateLocked(StateStopped)
}

// Skip moves to the next track and plays it. With shuffle on, the next index
// is drawn uniformly over the whole playlist and may be the current one.
// Past the last track it wraps when repeat is on and stops otherwise.
func (e *Engine) Skip() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.playlist == nil || e.playlist.Len() == 0 {
		e.log.Warn().Msg("skip: no playlist or playlist is empty")
		return
	}
	next, ok := e.nextIndexLocked()
	if !ok {
		e.log.Debug().Int("index", e.index).Msg("skip: end of playlist")
		e.stopLocked()
		return
	}
	e.index = next
	e.stopped = false
	e.playLocked()
}

// nextIndexLocked returns the index auto-advance and Skip move to, and false
// when the end of the playlist is reached without repeat.
func (e *Engine) nextIndexLocked() (int, bool) {
	if e.playlist == nil {
		return 0, false
	}
	n := e.playlist.Len()
	if n == 0 {
		return 0, false
	}
	if e.shuffle {
		return e.randIntn(n), true
	}
	next := e.index + 1
	if next >= n {
		if e.repeat {
			return 0, true
		}
		return 0, false
	}
	return next, true
}

// SkipBack moves to the previous track and plays it. Before the first track
// it wraps to the last when repeat is on and stays at 0 otherwise.
func (e *Engine) SkipBack() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.playlist == nil || e.playlist.Len() == 0 {
		e.log.Warn().Msg("skip back: no playlist or playlist is empty")
		return
	}
	prev := e.index - 1
	if prev < 0 {
		if e.repeat {
			prev = e.playlist.Len() - 1
		} else {
			prev = 0
		}
	}
	e.index = prev
	e.stopped = false
	e.playLocked()
}

// PlayTrack plays t if it belongs to the current playlist.
func (e *Engine) PlayTrack(t *playlist.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.playlist == nil {
		e.log.Warn().Msg("play track: no playlist")
		return
	}
	i := e.playlist.IndexOf(t)
	if i < 0 {
		ev := e.log.Warn()
		if t != nil {
			ev = ev.Str("path", t.Path)
		}
		ev.Msg("play track: track not in playlist")
		return
	}
	e.index = i
	e.playLocked()
}

// PlayTrackAtIndex stops whatever is playing and plays the track at index.
// Out-of-range indexes are ignored.
func (e *Engine) PlayTrackAtIndex(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.playlist == nil || index < 0 || index >= e.playlist.Len() {
		e.log.Warn().Int("index", index).Msg("play track at index: out of range")
		return
	}
	e.stopLocked()
	e.index = index
	e.playLocked()
}

// SeekToSeconds moves the loaded track to s seconds (clamped to 0). When the
// backend cannot seek directly, it skips by the distance from the current
// position instead.
func (e *Engine) SeekToSeconds(s int) {
	s = max(s, 0)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.handle == nil {
		e.log.Debug().Int("seconds", s).Msg("seek: nothing loaded")
		return
	}

	path := e.handle.Path()
	target := s * 1000
	if err := e.backend.Seek(e.handle, target); err != nil {
		e.log.Debug().Err(err).Str("path", path).Msg("direct seek failed, skipping instead")
		cur, err := e.backend.Position(e.handle)
		if err != nil {
			e.log.Error().Err(err).Str("path", path).Msg("seek: read position")
			e.emitError(OpSeek, path, err)
			return
		}
		if err := e.backend.Skip(e.handle, target-cur); err != nil {
			e.log.Error().Err(err).Str("path", path).Msg("seek: skip")
			e.emitError(OpSeek, path, err)
			return
		}
	}

	e.setTime(s)
	if e.state == StatePlaying {
		e.startSamplerLocked(s)
	}
}
