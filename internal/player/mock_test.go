package player

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_PlayBlocksUntilFinish(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := NewMock()
		h, err := m.Load("/music/a.mp3")
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- m.Play(context.Background(), h) }()
		synctest.Wait()

		assert.Equal(t, 1, m.ActivePlays())
		select {
		case <-done:
			t.Fatal("Play returned before Finish")
		default:
		}

		m.Finish(h)
		synctest.Wait()
		require.NoError(t, <-done)
		assert.Equal(t, 0, m.ActivePlays())
	})
}

func TestMock_PauseInterruptsPlay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := NewMock()
		h, _ := m.Load("/music/a.mp3")

		done := make(chan error, 1)
		go func() { done <- m.Play(context.Background(), h) }()
		synctest.Wait()

		require.NoError(t, m.Pause(h))
		synctest.Wait()
		require.NoError(t, <-done)
		assert.True(t, m.LastHandle().Paused())

		// Playing again resumes and blocks.
		go func() { done <- m.Play(context.Background(), h) }()
		synctest.Wait()
		assert.Equal(t, 1, m.ActivePlays())
		assert.False(t, m.LastHandle().Paused())

		require.NoError(t, m.Release(h))
		synctest.Wait()
		require.NoError(t, <-done)
		assert.Equal(t, 2, m.LastHandle().Plays())
	})
}

func TestMock_PlayAfterRelease(t *testing.T) {
	m := NewMock()
	h, _ := m.Load("/music/a.mp3")
	require.NoError(t, m.Release(h))
	assert.ErrorIs(t, m.Play(context.Background(), h), ErrReleased)
	assert.True(t, m.LastHandle().Released())
}

func TestMock_LoadError(t *testing.T) {
	m := NewMock()
	m.SetLoadError("/music/bad.mp3", ErrUnsupportedFormat)

	_, err := m.Load("/music/bad.mp3")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Empty(t, m.Loads())
}

func TestMock_SeekAndSkip(t *testing.T) {
	m := NewMock()
	m.SetLength("/music/a.mp3", 180000)
	h, _ := m.Load("/music/a.mp3")

	length, err := m.Length(h)
	require.NoError(t, err)
	assert.Equal(t, 180000, length)

	require.NoError(t, m.Seek(h, 30000))
	pos, _ := m.Position(h)
	assert.Equal(t, 30000, pos)

	require.NoError(t, m.Skip(h, -40000))
	pos, _ = m.Position(h)
	assert.Equal(t, 0, pos)

	m.SetSeekUnsupported(true)
	assert.ErrorIs(t, m.Seek(h, 1000), ErrSeekUnsupported)

	assert.Equal(t, []int{30000}, m.Seeks())
	assert.Equal(t, []SkipCall{{Path: "/music/a.mp3", DeltaMs: -40000}}, m.Skips())
}

func TestMock_InvalidHandle(t *testing.T) {
	m := NewMock()
	assert.ErrorIs(t, m.Play(context.Background(), nil), ErrInvalidHandle)
	assert.ErrorIs(t, m.SetGain(nil, 0), ErrInvalidHandle)
	_, err := m.Position(nil)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestVolumeMock(t *testing.T) {
	v := NewVolumeMock()
	h, _ := v.Load("/music/a.mp3")

	var b Backend = v
	vs, ok := b.(VolumeSetter)
	require.True(t, ok)

	require.NoError(t, vs.SetVolume(h, 0.5))
	v.SetVolumeFails(true)
	require.Error(t, vs.SetVolume(h, 0.7))
	assert.Equal(t, []float64{0.5}, v.Volumes())
}

func TestMock_PlayWithCancelledContext(t *testing.T) {
	m := NewMock()
	h, _ := m.Load("/music/a.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Play(ctx, h), context.Canceled)
	assert.Equal(t, 0, m.LastHandle().Plays())
}

func TestMock_CancelUnblocksPlay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := NewMock()
		h, _ := m.Load("/music/a.mp3")
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- m.Play(ctx, h) }()
		synctest.Wait()

		cancel()
		synctest.Wait()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}
