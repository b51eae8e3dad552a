package playback

import (
	"math"

	"github.com/llehouerou/moodplayer/internal/player"
)

// SetVolumePercent sets the volume, clamped to [0, 100], and applies it to
// the loaded track as a gain of -60 + 0.6*v dB.
func (e *Engine) SetVolumePercent(v float64) {
	v = clampVolume(v)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	changed := e.volume != v
	e.volume = v
	e.applyVolumeLocked()
	if changed {
		e.emit(func(sub *Subscription) { send(sub.volumeCh, VolumeChange{Percent: v}) })
	}
}

// VolumePercent returns the volume percentage.
func (e *Engine) VolumePercent() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Engine) applyVolumeLocked() {
	if e.handle == nil {
		return
	}
	if err := e.backend.SetGain(e.handle, player.GainForPercent(e.volume)); err != nil {
		e.log.Warn().Err(err).Float64("volume", e.volume).Msg("apply gain")
		e.emitError(OpVolume, e.handle.Path(), err)
	}
	// Best effort: backends may support only one of the two controls.
	if vs, ok := e.backend.(player.VolumeSetter); ok {
		if err := vs.SetVolume(e.handle, e.volume/100); err != nil {
			e.log.Debug().Err(err).Msg("linear volume not applied")
		}
	}
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 100)
}
