package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged  <-chan StateChange
	TrackChanged  <-chan TrackChange
	TimeChanged   <-chan TimeChange
	VolumeChanged <-chan VolumeChange
	ModeChanged   <-chan ModeChange
	MoodChanged   <-chan MoodChange
	Error         <-chan ErrorEvent
	Done          <-chan struct{}

	// Internal write channels
	stateCh  chan StateChange
	trackCh  chan TrackChange
	timeCh   chan TimeChange
	volumeCh chan VolumeChange
	modeCh   chan ModeChange
	moodCh   chan MoodChange
	errorCh  chan ErrorEvent
	doneCh   chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:  make(chan StateChange, eventBufferSize),
		trackCh:  make(chan TrackChange, eventBufferSize),
		timeCh:   make(chan TimeChange, eventBufferSize),
		volumeCh: make(chan VolumeChange, eventBufferSize),
		modeCh:   make(chan ModeChange, eventBufferSize),
		moodCh:   make(chan MoodChange, eventBufferSize),
		errorCh:  make(chan ErrorEvent, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.TimeChanged = s.timeCh
	s.VolumeChanged = s.volumeCh
	s.ModeChanged = s.modeCh
	s.MoodChanged = s.moodCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e on ch without blocking. Events are dropped when the
// subscriber's buffer is full.
func send[E any](ch chan E, e E) {
	select {
	case ch <- e:
	default:
	}
}
