package app

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/moodplayer/internal/errmsg"
	"github.com/llehouerou/moodplayer/internal/playback"
	"github.com/llehouerou/moodplayer/internal/playlist"
	"github.com/llehouerou/moodplayer/internal/tags"
)

// Update handles messages and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		return m, nil
	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.snap = m.svc.Snapshot()
		return m, TickCmd()
	case ErrorMsg:
		m.status = formatError(playback.ErrorEvent(msg))
		return m, WatchErrors(m.sub)
	case ServiceClosedMsg:
		return m, nil
	case SourceLoadedMsg:
		return m.handleSourceLoaded(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == ScreenStart {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSourceLoaded(msg SourceLoadedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, playlist.ErrUnsupportedSource) && tags.IsAudioFile(msg.Source) {
		return m.playFile(msg.Source)
	}
	if msg.Err != nil {
		zlog.Error().Err(msg.Err).Str("source", msg.Source).Msg("loading playlist source")
		m.status = errmsg.FormatWith(errmsg.OpPlaylistLoad, msg.Source, msg.Err)
		return m, nil
	}
	if msg.Playlist.Len() == 0 {
		m.status = "No playable tracks in " + msg.Source
		return m, nil
	}

	m.svc.SetPlaylist(msg.Playlist)
	m.source = msg.Source
	m.cursor = 0
	m.status = ""
	m.input.Reset()
	m.input.Blur()
	m.screen = ScreenPlayer
	m.svc.Play()
	m.snap = m.svc.Snapshot()
	return m, nil
}

// playFile plays a single file outside any playlist. The session source is
// left unchanged.
func (m Model) playFile(path string) (tea.Model, tea.Cmd) {
	m.status = ""
	m.input.Reset()
	m.input.Blur()
	m.screen = ScreenPlayer
	m.svc.PlayPath(path)
	m.snap = m.svc.Snapshot()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "tab":
		return m.switchScreen((m.screen + 1) % screenCount), nil
	case "shift+tab":
		return m.switchScreen((m.screen + screenCount - 1) % screenCount), nil
	}

	if m.screen == ScreenStart {
		return m.handleStartKey(msg)
	}

	if m.handleTransportKey(msg.String()) {
		m.snap = m.svc.Snapshot()
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "m":
		return m.switchScreen(ScreenMood), nil
	case "esc":
		return m.switchScreen(ScreenPlayer), nil
	}

	switch m.screen {
	case ScreenPlaylist:
		m.handlePlaylistKey(msg.String())
	case ScreenMood:
		m.handleMoodKey(msg.String())
	}
	m.snap = m.svc.Snapshot()
	return m, nil
}

// handleTransportKey applies keys available on every playback screen.
func (m *Model) handleTransportKey(key string) bool {
	switch key {
	case " ":
		if m.svc.IsPlaying() {
			m.svc.Pause()
		} else {
			m.svc.PlayOrResume()
		}
	case "n":
		m.svc.Skip()
	case "p":
		m.svc.SkipBack()
	case "s":
		m.svc.Stop()
	case "left":
		m.svc.SeekToSeconds(m.svc.CurrentTime() - seekStepSec)
	case "right":
		m.svc.SeekToSeconds(m.svc.CurrentTime() + seekStepSec)
	case "+", "=":
		m.svc.SetVolumePercent(m.svc.VolumePercent() + volumeStep)
	case "-":
		m.svc.SetVolumePercent(m.svc.VolumePercent() - volumeStep)
	case "z":
		m.svc.SetShuffle(!m.svc.Shuffle())
	case "r":
		m.svc.SetRepeat(!m.svc.Repeat())
	default:
		return false
	}
	return true
}

func (m *Model) handlePlaylistKey(key string) {
	n := m.playlistLen()
	if n == 0 {
		return
	}
	switch key {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, n-1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = n - 1
	case "enter":
		m.svc.PlayTrackAtIndex(m.cursor)
	}
}

func (m *Model) handleMoodKey(key string) {
	moods := playback.Moods()
	switch key {
	case "up", "k":
		m.moodCursor = max(m.moodCursor-1, 0)
	case "down", "j":
		m.moodCursor = min(m.moodCursor+1, len(moods)-1)
	case "enter":
		m.svc.SetSelectedMood(moods[m.moodCursor])
	case "backspace", "0":
		m.svc.SetSelectedMood(playback.MoodNone)
	}
}

func (m Model) handleStartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.svc.Playlist() == nil {
			return m.quit()
		}
		return m.switchScreen(ScreenPlayer), nil
	case "enter":
		source := strings.TrimSpace(m.input.Value())
		if source == "" {
			m.status = "Enter a playlist file or folder"
			return m, nil
		}
		m.status = "Loading " + source + "…"
		return m, LoadSourceCmd(source)
	case "up", "down":
		if len(m.recent) == 0 {
			return m, nil
		}
		if msg.String() == "up" {
			m.recentIdx = (m.recentIdx - 1 + len(m.recent)) % len(m.recent)
		} else {
			m.recentIdx = (m.recentIdx + 1) % len(m.recent)
		}
		m.input.SetValue(m.recent[m.recentIdx].Path)
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) switchScreen(s Screen) Model {
	m.screen = s
	if s == ScreenStart {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	if s == ScreenPlaylist {
		if idx := m.svc.CurrentIndex(); idx >= 0 && idx < m.playlistLen() {
			m.cursor = idx
		}
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.state != nil && m.source != "" {
		m.state.SaveSession(m.Session())
	}
	return m, tea.Quit
}

func (m Model) playlistLen() int {
	if p := m.svc.Playlist(); p != nil {
		return p.Len()
	}
	return 0
}

// formatError turns an engine error event into a status line message.
func formatError(e playback.ErrorEvent) string {
	var op errmsg.Op
	switch e.Op {
	case playback.OpLoad, playback.OpPlay:
		op = errmsg.OpPlaybackStart
	case playback.OpPause:
		op = errmsg.OpPlaybackPause
	case playback.OpSeek:
		op = errmsg.OpPlaybackSeek
	case playback.OpVolume:
		op = errmsg.OpVolumeChange
	default:
		op = errmsg.Op(e.Op)
	}
	name := ""
	if e.Path != "" {
		name = filepath.Base(e.Path)
	}
	return errmsg.FormatWith(op, name, e.Err)
}
