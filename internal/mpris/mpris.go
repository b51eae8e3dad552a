//go:build linux

// Package mpris exposes the playback engine over D-Bus as an MPRIS2 media
// player so desktop media keys and applets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/moodplayer/internal/playback"
)

const microsPerSecond = 1_000_000

// Adapter connects a playback.Service to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("moodplayer", &rootAdapter{}, &playerAdapter{service: service}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			zlog.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "MoodPlayer", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// optional loop status and shuffle interfaces.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	p.service.Skip()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.service.SkipBack()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.service.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.service.IsPlaying() {
		p.service.Pause()
		return nil
	}
	p.service.PlayOrResume()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.service.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	if !p.service.IsPlaying() {
		p.service.PlayOrResume()
	}
	return nil
}

// Seek moves relative to the reported position.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.service.SeekToSeconds(p.service.CurrentTime() + int(offset/microsPerSecond))
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.service.SeekToSeconds(int(position / microsPerSecond))
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.service.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Path)),
		Length:  types.Microseconds(int64(track.Length()) * microsPerSecond),
		Title:   track.Title,
		Artist:  []string{track.Artist},
		Album:   track.Album,
	}

	if artPath := FindAlbumArt(track.Path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.VolumePercent() / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.service.SetVolumePercent(v * 100)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(p.service.CurrentTime()) * microsPerSecond, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.hasTracks(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.hasTracks(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.hasTracks() || p.service.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func (p *playerAdapter) hasTracks() bool {
	pl := p.service.Playlist()
	return pl != nil && pl.Len() > 0
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.Repeat() {
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Single-track looping is not supported and maps to playlist repeat.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.service.SetRepeat(false)
	case types.LoopStatusTrack, types.LoopStatusPlaylist:
		p.service.SetRepeat(true)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.service.SetShuffle(shuffle)
	return nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
