package playback

import (
	"context"
	"time"
)

// startSamplerLocked restarts the position sampler from the given second.
func (e *Engine) startSamplerLocked(from int) {
	e.stopSamplerLocked()
	ctx, cancel := context.WithCancel(context.Background())
	e.samplerCancel = cancel
	e.wg.Add(1)
	go e.sample(ctx, from, e.sampleInterval)
}

func (e *Engine) stopSamplerLocked() {
	if e.samplerCancel != nil {
		e.samplerCancel()
		e.samplerCancel = nil
	}
}

// sample publishes t, then t+1 after each tick, until cancelled or until
// playback leaves the Playing state or passes the known track length.
func (e *Engine) sample(ctx context.Context, t int, interval time.Duration) {
	defer e.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !e.publishSample(ctx, t) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		t++
	}
}

// publishSample checks and publishes under the engine lock so that nothing is
// published once the sampler has been cancelled.
func (e *Engine) publishSample(ctx context.Context, t int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ctx.Err() != nil || e.state != StatePlaying || e.stopped {
		return false
	}
	if track := e.currentTrackLocked(); track != nil {
		if length := track.Length(); length > 0 && t > length {
			return false
		}
	}
	e.setTime(t)
	return true
}
