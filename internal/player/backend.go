// Package player adapts audio output libraries to the narrow backend
// contract the playback engine drives.
package player

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidHandle is returned when a handle from another backend is passed in.
	ErrInvalidHandle = errors.New("invalid audio handle")
	// ErrReleased is returned when operating on a released handle.
	ErrReleased = errors.New("audio handle released")
	// ErrSeekUnsupported is returned by Seek when the stream cannot seek directly.
	ErrSeekUnsupported = errors.New("seek not supported")
	// ErrUnsupportedFormat is returned by Load for files the backend cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Gain range applied for volume percentages: 0% maps to MinGainDB, 100% to MaxGainDB.
const (
	MinGainDB = -60.0
	MaxGainDB = 0.0
)

// Handle is an opaque reference to a loaded, decodable audio resource.
type Handle interface {
	Path() string
}

// Backend is the audio output contract consumed by the playback engine.
//
// Play blocks until the stream ends, the handle is paused or released, or ctx
// is done. A Play whose ctx is already done must not start output. A later
// Play on a paused handle continues from the current position.
// Pause and Release must be safe to call while another goroutine is blocked
// in Play on the same handle. Release is idempotent.
type Backend interface {
	Load(path string) (Handle, error)
	Play(ctx context.Context, h Handle) error
	Pause(h Handle) error
	Release(h Handle) error
	Position(h Handle) (ms int, err error)
	Length(h Handle) (ms int, err error)
	Seek(h Handle, ms int) error
	Skip(h Handle, deltaMs int) error
	SetGain(h Handle, db float64) error
}

// VolumeSetter is implemented by backends that also accept a linear volume.
type VolumeSetter interface {
	SetVolume(h Handle, linear float64) error
}

// GainForPercent maps a 0-100 volume percentage to a gain in decibels.
func GainForPercent(percent float64) float64 {
	percent = min(max(percent, 0), 100)
	return MinGainDB + percent*(MaxGainDB-MinGainDB)/100
}
