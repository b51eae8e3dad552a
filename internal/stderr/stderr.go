//go:build !windows

// Package stderr captures output that C audio libraries (ALSA, PulseAudio
// shims) write directly to file descriptor 2, bypassing Go's os.Stderr, and
// forwards it to the log so it cannot corrupt the TUI layout.
package stderr

import (
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start begins capturing stderr output and logs each captured line at warn
// level. Must be called early in main(), before the audio device is opened.
// On error the program can continue without capture.
func Start(log zerolog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return errors.Wrap(err, "create stderr pipe")
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return errors.Wrap(err, "duplicate stderr")
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return errors.Wrap(err, "redirect stderr")
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})

	go func(d chan struct{}) {
		defer close(d)
		forward(r, log.With().Str("component", "stderr").Logger())
	}(done)

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible even if the TUI is running.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for captured output to be logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead == nil {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	// Closing the write end lets the forwarder drain and exit.
	pipeWrite.Close()
	<-done
	pipeRead.Close()
	pipeRead, pipeWrite = nil, nil
}
