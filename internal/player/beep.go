package player

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// speakerRate is the output sample rate; tracks at other rates are resampled.
const speakerRate = beep.SampleRate(44100)

// dbPerBeepStep is the gain of one step of beep's base-2 volume scale.
var dbPerBeepStep = 20 * math.Log10(2)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// output is the device handles are mixed into. Lock guards every field the
// device reads while streaming.
type output interface {
	Init() error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// speakerOutput is the system sound card, shared by all backends.
type speakerOutput struct{}

func (speakerOutput) Init() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerErr
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }

// Verify BeepBackend implements Backend at compile time.
var _ Backend = (*BeepBackend)(nil)

// BeepBackend plays audio through the beep speaker.
type BeepBackend struct {
	out output
}

// NewBeepBackend creates a backend. The speaker is initialised on first Load.
func NewBeepBackend() *BeepBackend {
	return &BeepBackend{out: speakerOutput{}}
}

type beepHandle struct {
	out      output
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	finished   chan struct{} // closed by the speaker at end of stream
	finishOnce sync.Once

	mu        sync.Mutex
	queued    bool          // handed to the speaker
	interrupt chan struct{} // closed to unblock the current Play
	released  bool
}

func (h *beepHandle) Path() string { return h.path }

func (h *beepHandle) finish() {
	h.finishOnce.Do(func() { close(h.finished) })
}

// interruptLocked unblocks a pending Play. Caller holds h.mu.
func (h *beepHandle) interruptLocked() {
	if h.interrupt != nil {
		close(h.interrupt)
		h.interrupt = nil
	}
}

func asBeepHandle(h Handle) (*beepHandle, error) {
	bh, ok := h.(*beepHandle)
	if !ok || bh == nil {
		return nil, ErrInvalidHandle
	}
	return bh, nil
}

// Load decodes the file and prepares it for playback. Nothing is heard until Play.
func (b *BeepBackend) Load(path string) (Handle, error) {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	if err := b.out.Init(); err != nil {
		streamer.Close()
		return nil, errors.Wrap(err, "init speaker")
	}

	var out beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		out = beep.Resample(4, format.SampleRate, speakerRate, streamer)
	}

	h := &beepHandle{
		out:      b.out,
		path:     path,
		streamer: streamer,
		format:   format,
		finished: make(chan struct{}),
	}
	h.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	h.volume = &effects.Volume{Streamer: h.ctrl, Base: 2}
	return h, nil
}

// Play starts or continues playback and blocks until the stream ends, the
// handle is paused or released, or ctx is done.
func (b *BeepBackend) Play(ctx context.Context, h Handle) error {
	bh, err := asBeepHandle(h)
	if err != nil {
		return err
	}

	bh.mu.Lock()
	if bh.released {
		bh.mu.Unlock()
		return ErrReleased
	}
	// Checked under the handle lock so a Pause issued after cancelling ctx
	// cannot be undone by a Play that was about to start.
	if err := ctx.Err(); err != nil {
		bh.mu.Unlock()
		return err
	}
	select {
	case <-bh.finished:
		bh.mu.Unlock()
		return nil
	default:
	}

	bh.interruptLocked()
	interrupt := make(chan struct{})
	bh.interrupt = interrupt

	if !bh.queued {
		bh.queued = true
		bh.out.Play(beep.Seq(bh.volume, beep.Callback(bh.finish)))
	}
	bh.out.Lock()
	bh.ctrl.Paused = false
	bh.out.Unlock()
	bh.mu.Unlock()

	select {
	case <-bh.finished:
	case <-interrupt:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Pause halts output and returns any blocked Play call.
func (b *BeepBackend) Pause(h Handle) error {
	bh, err := asBeepHandle(h)
	if err != nil {
		return err
	}
	bh.mu.Lock()
	defer bh.mu.Unlock()
	if bh.released {
		return nil
	}
	bh.out.Lock()
	bh.ctrl.Paused = true
	bh.out.Unlock()
	bh.interruptLocked()
	return nil
}

// Release detaches the stream from the speaker and closes the file.
func (b *BeepBackend) Release(h Handle) error {
	bh, err := asBeepHandle(h)
	if err != nil {
		return err
	}
	bh.mu.Lock()
	defer bh.mu.Unlock()
	if bh.released {
		return nil
	}
	bh.released = true

	// A nil streamer makes the sequence move on to its callback, so the
	// speaker drops the handle on its next pass.
	bh.out.Lock()
	bh.ctrl.Streamer = nil
	bh.out.Unlock()
	bh.interruptLocked()

	return bh.streamer.Close()
}

// Position returns the playback offset in milliseconds.
func (b *BeepBackend) Position(h Handle) (int, error) {
	bh, err := b.live(h)
	if err != nil {
		return 0, err
	}
	defer bh.mu.Unlock()
	bh.out.Lock()
	pos := bh.streamer.Position()
	bh.out.Unlock()
	return int(bh.format.SampleRate.D(pos).Milliseconds()), nil
}

// Length returns the stream length in milliseconds.
func (b *BeepBackend) Length(h Handle) (int, error) {
	bh, err := b.live(h)
	if err != nil {
		return 0, err
	}
	defer bh.mu.Unlock()
	return int(bh.format.SampleRate.D(bh.streamer.Len()).Milliseconds()), nil
}

// Seek moves to an absolute offset in milliseconds.
func (b *BeepBackend) Seek(h Handle, ms int) error {
	bh, err := b.live(h)
	if err != nil {
		return err
	}
	defer bh.mu.Unlock()
	return bh.seekLocked(bh.format.SampleRate.N(time.Duration(ms) * time.Millisecond))
}

// Skip moves by a relative offset in milliseconds.
func (b *BeepBackend) Skip(h Handle, deltaMs int) error {
	bh, err := b.live(h)
	if err != nil {
		return err
	}
	defer bh.mu.Unlock()
	bh.out.Lock()
	pos := bh.streamer.Position()
	bh.out.Unlock()
	return bh.seekLocked(pos + bh.format.SampleRate.N(time.Duration(deltaMs)*time.Millisecond))
}

func (h *beepHandle) seekLocked(sample int) error {
	sample = min(max(sample, 0), h.streamer.Len())
	h.out.Lock()
	defer h.out.Unlock()
	if err := h.streamer.Seek(sample); err != nil {
		return errors.Mark(errors.Wrap(err, "seek"), ErrSeekUnsupported)
	}
	return nil
}

// SetGain applies a gain in decibels. Gains at or below MinGainDB are silent.
func (b *BeepBackend) SetGain(h Handle, db float64) error {
	bh, err := b.live(h)
	if err != nil {
		return err
	}
	defer bh.mu.Unlock()
	vol, silent := gainToBeepVolume(db)
	bh.out.Lock()
	bh.volume.Volume = vol
	bh.volume.Silent = silent
	bh.out.Unlock()
	return nil
}

// live returns the handle locked if it has not been released.
func (b *BeepBackend) live(h Handle) (*beepHandle, error) {
	bh, err := asBeepHandle(h)
	if err != nil {
		return nil, err
	}
	bh.mu.Lock()
	if bh.released {
		bh.mu.Unlock()
		return nil, ErrReleased
	}
	return bh, nil
}

// gainToBeepVolume converts decibels to beep's base-2 volume exponent.
func gainToBeepVolume(db float64) (volume float64, silent bool) {
	return db / dbPerBeepStep, db <= MinGainDB
}
