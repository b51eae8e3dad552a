package tags

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSilentWAV(t *testing.T, path string, rate beep.SampleRate, d time.Duration) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(rate.N(d)), format))
}

func TestProbe_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeSilentWAV(t, path, 44100, 2*time.Second)

	info, err := Probe(path)
	require.NoError(t, err)
	assert.Equal(t, "WAV", info.Format)
	assert.Equal(t, 44100, info.SampleRate)
	assert.Equal(t, 16, info.BitDepth)
	assert.Equal(t, 2*time.Second, info.Duration)
}

func TestProbe_UnsupportedFormat(t *testing.T) {
	_, err := Probe("/music/track.opus")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestProbe_MissingFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp3", "b.wav"} {
		_, err := Probe(filepath.Join(dir, name))
		assert.Error(t, err, name)
	}
}

func TestProbe_GarbageFLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flac")
	require.NoError(t, os.WriteFile(path, []byte("not a flac file"), 0o600))

	_, err := Probe(path)
	assert.Error(t, err)
}
