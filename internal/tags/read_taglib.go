package tags

import (
	"github.com/cockroachdb/errors"
	"go.senan.xyz/taglib"
)

// readWithTaglib reads metadata using TagLib as fallback when dhowden/tag fails.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, errors.Wrap(err, "taglib read")
	}
	tags := taglibTags(rawTags)

	return &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist, taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		TrackNumber: parseTrackNumber(tags.get(taglib.TrackNumber)),
	}, nil
}
