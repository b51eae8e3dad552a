package tags

import (
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/cockroachdb/errors"
)

// readMP3WithID3v2 reads MP3 metadata using only the id3v2 library.
// A file without any ID3v2 tag yields an empty Tag, not an error.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, errors.Wrap(err, "parse id3v2")
	}
	defer id3tag.Close()

	return &Tag{
		Path:        path,
		Title:       strings.TrimSpace(id3tag.Title()),
		Artist:      strings.TrimSpace(id3tag.Artist()),
		Album:       strings.TrimSpace(id3tag.Album()),
		TrackNumber: parseTrackNumber(id3tag.GetTextFrame("TRCK").Text),
	}, nil
}
