package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/moodplayer/internal/playback"
	"github.com/llehouerou/moodplayer/internal/playlist"
)

// TickInterval is how often the view polls the engine snapshot.
const TickInterval = 250 * time.Millisecond

// TickCmd returns a command that sends TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchErrors returns a command that waits for the next engine error.
func WatchErrors(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return ErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// LoadSourceCmd loads a playlist file or folder off the UI goroutine.
func LoadSourceCmd(source string) tea.Cmd {
	return func() tea.Msg {
		p, err := playlist.Load(source)
		return SourceLoadedMsg{Source: source, Playlist: p, Err: err}
	}
}
