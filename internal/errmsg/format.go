// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playlist operations
	OpPlaylistLoad Op = "load playlist"
	OpFolderScan   Op = "scan folder"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackSeek  Op = "seek"
	OpVolumeChange  Op = "change volume"

	// Session operations
	OpSessionLoad Op = "restore session"
	OpSessionSave Op = "save session"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
