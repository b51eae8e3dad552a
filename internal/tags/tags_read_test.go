package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestMP3 creates a minimal MP3 frame, optionally tagged with ID3v2.
func createTestMP3(t *testing.T, dir, name string, title, artist, album string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	// MPEG1 Layer3, 128kbps, 44100Hz, stereo
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	require.NoError(t, os.WriteFile(path, frame, 0o600))

	if title == "" && artist == "" && album == "" {
		return path
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(title)
	tag.SetArtist(artist)
	tag.SetAlbum(album)
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "3/12")
	require.NoError(t, tag.Save())
	require.NoError(t, tag.Close())
	return path
}

func TestRead_MP3WithID3v2(t *testing.T) {
	path := createTestMP3(t, t.TempDir(), "song.mp3", "Blue Monday", "New Order", "Power, Corruption & Lies")

	tag, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, path, tag.Path)
	assert.Equal(t, "Blue Monday", tag.Title)
	assert.Equal(t, "New Order", tag.Artist)
	assert.Equal(t, "Power, Corruption & Lies", tag.Album)
	assert.Equal(t, 3, tag.TrackNumber)
}

func TestRead_MP3WithoutTags(t *testing.T) {
	path := createTestMP3(t, t.TempDir(), "bare.mp3", "", "", "")

	tag, err := Read(path)

	require.NoError(t, err)
	assert.Empty(t, tag.Title)
	assert.Empty(t, tag.Artist)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.mp3"))
	assert.Error(t, err)
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/music/a.mp3", true},
		{"/music/a.MP3", true},
		{"/music/b.flac", true},
		{"/music/c.wav", true},
		{"/music/d.opus", false},
		{"/music/cover.jpg", false},
		{"/music/noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAudioFile(tt.path))
		})
	}
}

func TestParseTrackNumber(t *testing.T) {
	assert.Equal(t, 0, parseTrackNumber(""))
	assert.Equal(t, 5, parseTrackNumber("5"))
	assert.Equal(t, 5, parseTrackNumber("5/10"))
	assert.Equal(t, 0, parseTrackNumber("x"))
}
