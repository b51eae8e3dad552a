package playback

import (
	"context"

	"github.com/llehouerou/moodplayer/internal/player"
)

// startRunnerLocked launches the playback runner for the cycle identified by token.
func (e *Engine) startRunnerLocked(token uint64, h player.Handle) {
	e.cancelRunLocked()
	ctx, cancel := context.WithCancel(context.Background())
	e.runCancel = cancel
	e.wg.Add(1)
	go e.run(ctx, token, h)
}

// cancelRunLocked keeps a runner that has not reached the backend yet from
// starting output. Runners already inside Play are unblocked by Pause or
// Release on their handle.
func (e *Engine) cancelRunLocked() {
	if e.runCancel != nil {
		e.runCancel()
		e.runCancel = nil
	}
}

// run blocks in the backend for one cycle, then auto-advances if its token
// is still current and playback was neither stopped nor paused meanwhile.
func (e *Engine) run(ctx context.Context, token uint64, h player.Handle) {
	defer e.wg.Done()

	err := e.backend.Play(ctx, h)

	e.mu.Lock()
	defer e.mu.Unlock()

	if current := e.token.Load(); current != token {
		e.log.Debug().
			Uint64("token", token).
			Uint64("current", current).
			Str("path", h.Path()).
			Msg("stale playback runner discarded")
		return
	}
	if e.closed || e.stopped || e.state == StatePaused {
		return
	}
	if err != nil {
		e.log.Error().Err(err).Str("path", h.Path()).Msg("playback failed")
		e.emitError(OpPlay, h.Path(), err)
		e.stopLocked()
		return
	}

	if e.direct != nil {
		e.log.Debug().Str("path", h.Path()).Msg("file finished")
		e.stopLocked()
		return
	}

	next, ok := e.nextIndexLocked()
	if !ok {
		e.log.Info().Msg("end of playlist")
		e.stopLocked()
		return
	}
	e.index = next
	e.playLocked()
}
