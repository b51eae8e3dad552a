package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadM3U_ResolvesRelativePathsAndExtinf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "songs", "one.wav"), "not really audio")
	writeFile(t, filepath.Join(dir, "two.wav"), "not really audio")
	abs := filepath.Join(dir, "abs.wav")
	writeFile(t, abs, "not really audio")

	m3u := filepath.Join(dir, "evening.m3u")
	writeFile(t, m3u, "#EXTM3U\n"+
		"#EXTINF:123,Nina Simone - Feeling Good\n"+
		"songs/one.wav\n"+
		"\n"+
		"# a plain comment\n"+
		"two.wav\n"+
		"#EXTINF:60,Just A Title\n"+
		abs+"\n")

	pl, err := LoadM3U(m3u)

	require.NoError(t, err)
	assert.Equal(t, "evening", pl.Name())
	require.Equal(t, 3, pl.Len())

	first := pl.Track(0)
	assert.Equal(t, filepath.Join(dir, "songs", "one.wav"), first.Path)
	assert.Equal(t, "Feeling Good", first.Title)
	assert.Equal(t, "Nina Simone", first.Artist)
	assert.Equal(t, Unknown, first.Album)
	assert.Equal(t, 0, first.Length())

	// EXTINF applies only to the next path line
	second := pl.Track(1)
	assert.Equal(t, "two.wav", second.Title)
	assert.Equal(t, Unknown, second.Artist)

	third := pl.Track(2)
	assert.Equal(t, abs, third.Path)
	assert.Equal(t, "Just A Title", third.Title)
}

func TestLoadM3U_SkipsMissingEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "here.wav"), "x")
	m3u := filepath.Join(dir, "list.m3u")
	writeFile(t, m3u, "gone.wav\nhere.wav\n")

	pl, err := LoadM3U(m3u)

	require.NoError(t, err)
	require.Equal(t, 1, pl.Len())
	assert.Equal(t, filepath.Join(dir, "here.wav"), pl.Track(0).Path)
}

func TestLoadM3U_SkipsUndecodableEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp3", "b.ogg", "notes.txt", "c.FLAC"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}
	m3u := filepath.Join(dir, "mixed.m3u")
	writeFile(t, m3u, "a.mp3\n#EXTINF:10,Skipped - Entry\nb.ogg\nnotes.txt\nc.FLAC\n")

	pl, err := LoadM3U(m3u)

	require.NoError(t, err)
	require.Equal(t, 2, pl.Len())
	assert.Equal(t, filepath.Join(dir, "a.mp3"), pl.Track(0).Path)
	assert.Equal(t, filepath.Join(dir, "c.FLAC"), pl.Track(1).Path)
	// EXTINF of a skipped entry does not leak onto the next track
	assert.Equal(t, "c.FLAC", pl.Track(1).Title)
}

func TestLoadM3U_NotFound(t *testing.T) {
	_, err := LoadM3U(filepath.Join(t.TempDir(), "missing.m3u"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScanDir_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.wav"), "x")
	writeFile(t, filepath.Join(dir, "sub", "b.wav"), "x")
	writeFile(t, filepath.Join(dir, "sub", "deeper", "c.wav"), "x")
	writeFile(t, filepath.Join(dir, "sub", "cover.jpg"), "x")

	pl, err := ScanDir(dir, "all")

	require.NoError(t, err)
	assert.Equal(t, "all", pl.Name())
	require.Equal(t, 3, pl.Len())
	assert.Equal(t, "a.wav", pl.Track(0).Title)
	assert.Equal(t, "b.wav", pl.Track(1).Title)
	assert.Equal(t, "c.wav", pl.Track(2).Title)
}

func TestScanDir_NotAFolder(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.wav")
	writeFile(t, file, "x")

	_, err := ScanDir(file, "x")
	assert.Error(t, err)
}

func TestLoad_Dispatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "music", "a.wav"), "x")
	m3u := filepath.Join(dir, "list.m3u")
	writeFile(t, m3u, "music/a.wav\n")

	fromDir, err := Load(filepath.Join(dir, "music"))
	require.NoError(t, err)
	assert.Equal(t, "music", fromDir.Name())
	assert.Equal(t, 1, fromDir.Len())

	fromFile, err := Load(m3u)
	require.NoError(t, err)
	assert.Equal(t, "list", fromFile.Name())
	assert.Equal(t, 1, fromFile.Len())

	_, err = Load(filepath.Join(dir, "nowhere"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_RejectsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	song := filepath.Join(dir, "song.mp3")
	writeFile(t, song, "ID3 not a playlist\nmusic/a.wav\n")
	upper := filepath.Join(dir, "LIST.M3U8")
	writeFile(t, upper, "song.mp3\n")

	_, err := Load(song)
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	pl, err := Load(upper)
	require.NoError(t, err)
	assert.Equal(t, 1, pl.Len())
}

func TestIsPlaylistFile(t *testing.T) {
	assert.True(t, IsPlaylistFile("/a/b.m3u"))
	assert.True(t, IsPlaylistFile("/a/b.M3U8"))
	assert.False(t, IsPlaylistFile("/a/b.mp3"))
	assert.False(t, IsPlaylistFile("/a/folder"))
}

func TestParseExtinf(t *testing.T) {
	tests := []struct {
		line       string
		wantArtist string
		wantTitle  string
	}{
		{"#EXTINF:10,Artist - Title", "Artist", "Title"},
		{"#EXTINF:10,Artist - Title - Live", "Artist", "Title - Live"},
		{"#EXTINF:10,Only Title", "", "Only Title"},
		{"#EXTINF:10", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			artist, title := parseExtinf(tt.line)
			assert.Equal(t, tt.wantArtist, artist)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestTrackFromFile_FallsBackToBaseName(t *testing.T) {
	tr := TrackFromFile(filepath.Join(t.TempDir(), "Intro.mp3"))
	assert.Equal(t, "Intro.mp3", tr.Title)
	assert.Equal(t, Unknown, tr.Artist)
	assert.Equal(t, 0, tr.Length())
}
