package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
)

// Read reads tag metadata from an audio file.
// dhowden/tag is tried first; MP3 files fall back to a pure ID3v2 reader and
// other formats to TagLib.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open audio file")
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		case ExtFLAC, ExtOGG, ExtOPUS, ExtM4A, ExtWAV:
			return readWithTaglib(path)
		}
		return nil, errors.Wrapf(err, "read tags of %s", filepath.Base(path))
	}

	track, _ := m.Track()
	return &Tag{
		Path:        path,
		Title:       strings.TrimSpace(m.Title()),
		Artist:      strings.TrimSpace(m.Artist()),
		Album:       strings.TrimSpace(m.Album()),
		TrackNumber: track,
	}, nil
}
