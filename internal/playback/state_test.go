package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state                        State
		active, canPause, canResume bool
	}{
		{StateStopped, false, false, false},
		{StatePlaying, true, true, false},
		{StatePaused, true, false, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.active {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.active)
		}
		if got := tt.state.CanPause(); got != tt.canPause {
			t.Errorf("%v.CanPause() = %v, want %v", tt.state, got, tt.canPause)
		}
		if got := tt.state.CanResume(); got != tt.canResume {
			t.Errorf("%v.CanResume() = %v, want %v", tt.state, got, tt.canResume)
		}
	}
}
