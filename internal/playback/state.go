package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// CanPause returns true if pause has an effect in this state.
func (s State) CanPause() bool {
	return s == StatePlaying
}

// CanResume returns true if resume has an effect in this state.
func (s State) CanResume() bool {
	return s == StatePaused
}
