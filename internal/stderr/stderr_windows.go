//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio output does not produce the same stderr noise as ALSA.
package stderr

import (
	"os"

	"github.com/rs/zerolog"
)

// Start is a no-op on Windows.
func Start(zerolog.Logger) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
