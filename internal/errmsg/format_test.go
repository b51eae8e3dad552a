package errmsg

import (
	"errors"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaylistLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaylistLoad,
			err:      errors.New("file not found"),
			expected: "Failed to load playlist: file not found",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "session operation",
			op:       OpSessionSave,
			err:      errors.New("disk full"),
			expected: "Failed to save session: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "with context",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      errors.New("unsupported audio format"),
			expected: "Failed to start playback 'song.mp3': unsupported audio format",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpFolderScan,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to scan folder: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.context, tt.err); got != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpPlaylistLoad, OpFolderScan,
		OpPlaybackStart, OpPlaybackPause, OpPlaybackSeek, OpVolumeChange,
		OpSessionLoad, OpSessionSave,
		OpConfigLoad, OpInitialize,
	}

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}
			msg := Format(op, errors.New("test"))
			if !strings.HasPrefix(msg, "Failed to ") {
				t.Errorf("Format(%q) = %q, want prefix 'Failed to '", op, msg)
			}
		})
	}
}
