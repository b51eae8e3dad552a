package playlist

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/moodplayer/internal/tags"
)

var (
	// ErrNotFound is returned when a playlist source does not exist.
	ErrNotFound = errors.New("playlist source not found")
	// ErrUnsupportedSource is returned for a file that is neither an M3U
	// playlist nor a folder.
	ErrUnsupportedSource = errors.New("not a playlist file or folder")
)

const (
	extM3U      = ".m3u"
	extM3U8     = ".m3u8"
	extinfLabel = "#EXTINF:"
)

// Load builds a playlist from a source: an M3U file or a folder scanned recursively.
func Load(source string) (*Playlist, error) {
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", source)
		}
		return nil, errors.Wrap(err, "stat playlist source")
	}
	if info.IsDir() {
		return ScanDir(source, filepath.Base(source))
	}
	if IsPlaylistFile(source) {
		return LoadM3U(source)
	}
	return nil, errors.Wrapf(ErrUnsupportedSource, "%s", source)
}

// IsPlaylistFile reports whether path names an M3U playlist.
func IsPlaylistFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extM3U, extM3U8:
		return true
	}
	return false
}

// LoadM3U reads an M3U playlist. Relative entries are resolved against the
// playlist's directory, missing files and files the player cannot decode are
// skipped, and an #EXTINF line only applies to the path line that directly
// follows it.
func LoadM3U(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", path)
		}
		return nil, errors.Wrap(err, "open m3u")
	}
	defer f.Close()

	name := filepath.Base(path)
	name = strings.TrimSuffix(strings.TrimSuffix(name, extM3U8), extM3U)
	pl := New(name)
	dir := filepath.Dir(path)

	log := zlog.With().Str("playlist", path).Logger()

	var extinf string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", line == "#EXTM3U":
			continue
		case strings.HasPrefix(line, extinfLabel):
			extinf = line
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}

		entry := line
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(dir, entry)
		}
		info := extinf
		extinf = ""

		if !tags.IsAudioFile(entry) {
			log.Warn().Str("path", entry).Msg("playlist entry is not a playable audio file")
			continue
		}
		if _, err := os.Stat(entry); err != nil {
			log.Warn().Str("path", entry).Msg("playlist entry not found")
			continue
		}
		t := trackFromFile(entry, info)
		pl.Add(t)
		log.Debug().Stringer("track", t).Msg("track added")
	}
	if err := scanner.Err(); err != nil {
		return pl, errors.Wrap(err, "read m3u")
	}

	log.Info().Int("tracks", pl.Len()).Msg("playlist loaded")
	return pl, nil
}

// ScanDir collects all playable audio files below dir.
func ScanDir(dir, name string) (*Playlist, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", dir)
		}
		return nil, errors.Wrap(err, "stat folder")
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a folder", dir)
	}

	pl := New(name)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subfolders are skipped, not fatal.
			zlog.Warn().Err(err).Str("path", path).Msg("scan skipped entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !tags.IsAudioFile(path) {
			return nil
		}
		pl.Add(trackFromFile(path, ""))
		return nil
	})
	if err != nil {
		return pl, errors.Wrap(err, "scan folder")
	}

	zlog.Info().Str("folder", dir).Int("tracks", pl.Len()).Msg("folder scanned")
	return pl, nil
}

// TrackFromFile builds a track for a single file, reading its tags when possible.
func TrackFromFile(path string) *Track {
	return trackFromFile(path, "")
}

// trackFromFile builds a track from embedded tags, falling back to the
// #EXTINF display text and finally to the file name.
func trackFromFile(path, extinf string) *Track {
	var title, artist, album string
	if tag, err := tags.Read(path); err == nil {
		title, artist, album = tag.Title, tag.Artist, tag.Album
	} else {
		zlog.Debug().Err(err).Str("path", path).Msg("no readable tags")
	}

	if extinf != "" && (title == "" || artist == "") {
		infoArtist, infoTitle := parseExtinf(extinf)
		if artist == "" {
			artist = infoArtist
		}
		if title == "" {
			title = infoTitle
		}
	}
	if title == "" {
		title = filepath.Base(path)
	}

	return NewTrack(path, title, artist, album)
}

// parseExtinf extracts artist and title from "#EXTINF:<secs>,<Artist - Title>".
// Without a " - " separator the whole display text is the title.
func parseExtinf(line string) (artist, title string) {
	_, display, ok := strings.Cut(line, ",")
	if !ok {
		return "", ""
	}
	display = strings.TrimSpace(display)
	if a, t, found := strings.Cut(display, " - "); found {
		return strings.TrimSpace(a), strings.TrimSpace(t)
	}
	return "", display
}
