package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/moodplayer/internal/playback"
	"github.com/llehouerou/moodplayer/internal/state"
)

// Screen identifies one of the switchable views.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlayer
	ScreenPlaylist
	ScreenMood
	screenCount
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "Start"
	case ScreenPlayer:
		return "Player"
	case ScreenPlaylist:
		return "Playlist"
	case ScreenMood:
		return "Mood"
	default:
		return "Unknown"
	}
}

const (
	seekStepSec   = 5
	volumeStep    = 5
	recentLimit   = 5
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a Model.
type Options struct {
	Service playback.Service
	State   state.Interface // nil disables session persistence
	Source  string          // playlist source already loaded into Service
	Cursor  int             // initial playlist highlight, used when nothing is playing
}

// Model is the bubbletea model of the player.
type Model struct {
	svc    playback.Service
	state  state.Interface
	sub    *playback.Subscription
	source string

	screen     Screen
	cursor     int // playlist screen
	moodCursor int
	input      textinput.Model
	recent     []state.RecentSource
	recentIdx  int

	snap   playback.Snapshot
	status string

	width    int
	height   int
	quitting bool
}

// New creates the model. Without a loaded source or a playing file it opens
// on the start screen.
func New(opts Options) Model {
	in := textinput.New()
	in.Placeholder = "playlist, folder or audio file"
	in.Prompt = "› "
	in.CharLimit = 4096

	m := Model{
		svc:       opts.Service,
		state:     opts.State,
		sub:       opts.Service.Subscribe(),
		source:    opts.Source,
		screen:    ScreenPlayer,
		input:     in,
		recentIdx: -1,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	if (m.source == "" || opts.Service.Playlist() == nil) && !opts.Service.IsPlaying() {
		m.screen = ScreenStart
		m.input.Focus()
	}
	if m.state != nil {
		recent, err := m.state.RecentSources(recentLimit)
		if err != nil {
			zlog.Warn().Err(err).Msg("loading recent sources")
		}
		m.recent = recent
	}
	m.cursor = max(opts.Service.CurrentIndex(), 0)
	if !opts.Service.IsPlaying() && opts.Cursor > 0 && opts.Cursor < m.playlistLen() {
		m.cursor = opts.Cursor
	}
	m.moodCursor = moodIndex(opts.Service.SelectedMood())
	m.snap = opts.Service.Snapshot()
	return m
}

// Init starts the poll tick and the error watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), WatchErrors(m.sub), textinput.Blink)
}

// Screen returns the active screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Session returns the session to persist for the current state.
func (m Model) Session() state.Session {
	snap := m.svc.Snapshot()
	return state.Session{
		Source:     m.source,
		TrackIndex: max(snap.Index, 0),
		Volume:     snap.Volume,
		Shuffle:    snap.Shuffle,
		Repeat:     snap.Repeat,
		Mood:       snap.Mood.String(),
	}
}

func moodIndex(mood playback.Mood) int {
	for i, md := range playback.Moods() {
		if md == mood {
			return i
		}
	}
	return 0
}
