package player

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// Verify Mock implements Backend at compile time.
var _ Backend = (*Mock)(nil)

// MockHandle is the handle type produced by Mock.
type MockHandle struct {
	path string

	finished   chan struct{}
	finishOnce sync.Once

	mu         sync.Mutex
	interrupt  chan struct{}
	paused     bool
	released   bool
	plays      int
	positionMs int
	lengthMs   int
	gains      []float64
}

func (h *MockHandle) Path() string { return h.path }

// Released reports whether Release was called on the handle.
func (h *MockHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Paused reports whether the handle is currently paused.
func (h *MockHandle) Paused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.paused
}

// Plays returns how many times Play was called on the handle.
func (h *MockHandle) Plays() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.plays
}

// Gains returns the gains applied to the handle, in order.
func (h *MockHandle) Gains() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]float64(nil), h.gains...)
}

// SetPosition sets the position the handle reports.
func (h *MockHandle) SetPosition(ms int) {
	h.mu.Lock()
	h.positionMs = ms
	h.mu.Unlock()
}

func (h *MockHandle) interruptLocked() {
	if h.interrupt != nil {
		close(h.interrupt)
		h.interrupt = nil
	}
}

// SkipCall records a relative seek.
type SkipCall struct {
	Path    string
	DeltaMs int
}

// Mock is a goroutine-safe test double for Backend.
// Play blocks until Finish, Pause or Release is called for the handle, or
// until its context is done.
type Mock struct {
	mu              sync.Mutex
	handles         []*MockHandle
	lengths         map[string]int
	loadErrs        map[string]error
	seekUnsupported bool
	seeks           []int
	skips           []SkipCall
	active          int
}

// NewMock creates a new mock backend.
func NewMock() *Mock {
	return &Mock{
		lengths:  make(map[string]int),
		loadErrs: make(map[string]error),
	}
}

func (m *Mock) Load(path string) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadErrs[path]; err != nil {
		return nil, err
	}
	h := &MockHandle{
		path:     path,
		finished: make(chan struct{}),
		lengthMs: m.lengths[path],
	}
	m.handles = append(m.handles, h)
	return h, nil
}

func (m *Mock) Play(ctx context.Context, h Handle) error {
	mh, err := asMockHandle(h)
	if err != nil {
		return err
	}

	mh.mu.Lock()
	if mh.released {
		mh.mu.Unlock()
		return ErrReleased
	}
	if err := ctx.Err(); err != nil {
		mh.mu.Unlock()
		return err
	}
	mh.interruptLocked()
	interrupt := make(chan struct{})
	mh.interrupt = interrupt
	mh.paused = false
	mh.plays++
	mh.mu.Unlock()

	m.mu.Lock()
	m.active++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.active--
		m.mu.Unlock()
	}()

	select {
	case <-mh.finished:
	case <-interrupt:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (m *Mock) Pause(h Handle) error {
	mh, err := asMockHandle(h)
	if err != nil {
		return err
	}
	mh.mu.Lock()
	defer mh.mu.Unlock()
	mh.paused = true
	mh.interruptLocked()
	return nil
}

func (m *Mock) Release(h Handle) error {
	mh, err := asMockHandle(h)
	if err != nil {
		return err
	}
	mh.mu.Lock()
	defer mh.mu.Unlock()
	mh.released = true
	mh.interruptLocked()
	return nil
}

func (m *Mock) Position(h Handle) (int, error) {
	mh, err := asMockHandle(h)
	if err != nil {
		return 0, err
	}
	mh.mu.Lock()
	defer mh.mu.Unlock()
	return mh.positionMs, nil
}

func (m *Mock) Length(h Handle) (int, error) {
	mh, err := asMockHandle(h)
	if err != nil {
		return 0, err
	}
	mh.mu.Lock()
	defer mh.mu.Unlock()
	return mh.lengthMs, nil
}

func (m *Mock) Seek(h Handle, ms int) error {
	mh, err := asMockHandle(h)
	if err != nil {
		return err
	}
	m.mu.Lock()
	unsupported := m.seekUnsupported
	if !unsupported {
		m.seeks = append(m.seeks, ms)
	}
	m.mu.Unlock()
	if unsupported {
		return ErrSeekUnsupported
	}
	mh.SetPosition(ms)
	return nil
}

func (m *Mock) Skip(h Handle, deltaMs int) error {
	mh, err := asMockHandle(h)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.skips = append(m.skips, SkipCall{Path: mh.path, DeltaMs: deltaMs})
	m.mu.Unlock()

	mh.mu.Lock()
	mh.positionMs = max(mh.positionMs+deltaMs, 0)
	mh.mu.Unlock()
	return nil
}

func (m *Mock) SetGain(h Handle, db float64) error {
	mh, err := asMockHandle(h)
	if err != nil {
		return err
	}
	mh.mu.Lock()
	mh.gains = append(mh.gains, db)
	mh.mu.Unlock()
	return nil
}

func asMockHandle(h Handle) (*MockHandle, error) {
	mh, ok := h.(*MockHandle)
	if !ok || mh == nil {
		return nil, ErrInvalidHandle
	}
	return mh, nil
}

// Test helpers

// Finish simulates the natural end of the handle's stream.
func (m *Mock) Finish(h Handle) {
	if mh, err := asMockHandle(h); err == nil {
		mh.finishOnce.Do(func() { close(mh.finished) })
	}
}

// SetLength sets the length in milliseconds reported for handles loaded from path.
func (m *Mock) SetLength(path string, ms int) {
	m.mu.Lock()
	m.lengths[path] = ms
	m.mu.Unlock()
}

// SetLoadError makes Load fail for the given path.
func (m *Mock) SetLoadError(path string, err error) {
	m.mu.Lock()
	m.loadErrs[path] = err
	m.mu.Unlock()
}

// SetSeekUnsupported makes Seek return ErrSeekUnsupported.
func (m *Mock) SetSeekUnsupported(unsupported bool) {
	m.mu.Lock()
	m.seekUnsupported = unsupported
	m.mu.Unlock()
}

// Handles returns all handles loaded so far, in order.
func (m *Mock) Handles() []*MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockHandle(nil), m.handles...)
}

// LastHandle returns the most recently loaded handle, or nil.
func (m *Mock) LastHandle() *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.handles) == 0 {
		return nil
	}
	return m.handles[len(m.handles)-1]
}

// Loads returns the paths passed to Load, in order.
func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, len(m.handles))
	for i, h := range m.handles {
		paths[i] = h.path
	}
	return paths
}

// ActivePlays returns the number of Play calls currently blocked.
func (m *Mock) ActivePlays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Seeks returns the absolute seek targets in milliseconds.
func (m *Mock) Seeks() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.seeks...)
}

// Skips returns the relative seeks.
func (m *Mock) Skips() []SkipCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SkipCall(nil), m.skips...)
}

// VolumeMock is a Mock that also implements VolumeSetter.
type VolumeMock struct {
	*Mock

	volMu   sync.Mutex
	volumes []float64
	failVol bool
}

// Verify VolumeMock implements VolumeSetter at compile time.
var _ VolumeSetter = (*VolumeMock)(nil)

// NewVolumeMock creates a mock backend that accepts linear volumes.
func NewVolumeMock() *VolumeMock {
	return &VolumeMock{Mock: NewMock()}
}

func (v *VolumeMock) SetVolume(h Handle, linear float64) error {
	if _, err := asMockHandle(h); err != nil {
		return err
	}
	v.volMu.Lock()
	defer v.volMu.Unlock()
	if v.failVol {
		return errors.New("volume control unavailable")
	}
	v.volumes = append(v.volumes, linear)
	return nil
}

// SetVolumeFails makes SetVolume return an error.
func (v *VolumeMock) SetVolumeFails(fail bool) {
	v.volMu.Lock()
	v.failVol = fail
	v.volMu.Unlock()
}

// Volumes returns the linear volumes applied, in order.
func (v *VolumeMock) Volumes() []float64 {
	v.volMu.Lock()
	defer v.volMu.Unlock()
	return append([]float64(nil), v.volumes...)
}
