package player

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/moodplayer/internal/tags"
)

// decodeFile opens and decodes an audio file. The returned streamer owns the
// file and closes it on Close.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != tags.ExtMP3 && ext != tags.ExtFLAC && ext != tags.ExtWAV {
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupportedFormat, "%s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "open audio file")
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case tags.ExtMP3:
		streamer, format, err = decodeMP3(f)
	case tags.ExtFLAC:
		// Some taggers prepend ID3v2 to FLAC files, which the decoder rejects.
		if err := skipID3v2(f); err != nil {
			f.Close()
			return nil, beep.Format{}, errors.Wrap(err, "skip id3v2 header")
		}
		streamer, format, err = flac.Decode(f)
	case tags.ExtWAV:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return streamer, format, nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the stream.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
