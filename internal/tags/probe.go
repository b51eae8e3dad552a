package tags

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-mp3"
)

// ErrUnsupportedFormat is returned by Probe for files the player cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// StreamInfo describes the audio stream of a file.
type StreamInfo struct {
	Duration   time.Duration
	Format     string // "MP3", "FLAC" or "WAV"
	SampleRate int
	BitDepth   int
}

// Probe reads stream properties from headers without decoding the audio.
func Probe(path string) (*StreamInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtMP3:
		return probeMP3(path)
	case ExtFLAC:
		return probeFLAC(path)
	case ExtWAV:
		return probeWAV(path)
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", ext)
}

func probeMP3(path string) (*StreamInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open audio file")
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, errors.Wrap(err, "read mp3 header")
	}
	rate := d.SampleRate()
	if rate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}
	samples := max(d.SampleCount(), 0)
	return &StreamInfo{
		Duration:   time.Duration(float64(samples) / float64(rate) * float64(time.Second)),
		Format:     "MP3",
		SampleRate: rate,
		BitDepth:   16,
	}, nil
}

// probeFLAC reads the STREAMINFO block: 20 bits of sample rate, 3 of
// channels, 5 of bits per sample minus one, then 36 bits of total samples.
func probeFLAC(path string) (*StreamInfo, error) {
	file, err := goflac.ParseFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "parse flac metadata")
	}
	for _, meta := range file.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data
		rate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		bits := (int(data[12])&0x01)<<4 | int(data[13])>>4 + 1
		total := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])

		info := &StreamInfo{Format: "FLAC", SampleRate: rate, BitDepth: bits}
		if rate > 0 {
			info.Duration = time.Duration(float64(total) / float64(rate) * float64(time.Second))
		}
		return info, nil
	}
	return nil, errors.New("flac: missing streaminfo block")
}

func probeWAV(path string) (*StreamInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open audio file")
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "read wav header")
	}
	return &StreamInfo{
		Duration:   format.SampleRate.D(s.Len()),
		Format:     "WAV",
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}, nil
}
