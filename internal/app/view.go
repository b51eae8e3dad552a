package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/moodplayer/internal/playback"
)

const appTitle = "MoodPlayer"

var screenHelp = map[Screen]string{
	ScreenStart:    "enter load · ↑/↓ recent · tab screens · esc back",
	ScreenPlayer:   "space play/pause · n/p next/prev · s stop · ←/→ seek · +/- volume · z shuffle · r repeat · m mood · q quit",
	ScreenPlaylist: "↑/↓ move · enter play · space play/pause · n/p next/prev · tab screens · q quit",
	ScreenMood:     "↑/↓ move · enter select · 0 clear · esc back · q quit",
}

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	inner := max(m.width-4, 20)
	var body string
	switch m.screen {
	case ScreenStart:
		body = m.viewStart(inner)
	case ScreenPlaylist:
		body = m.viewPlaylist(inner)
	case ScreenMood:
		body = m.viewMood(inner)
	default:
		body = m.viewPlayer(inner)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		panelStyle.Width(inner+2).Render(body),
		m.viewFooter(),
	)
}

func (m Model) viewHeader() string {
	tabs := make([]string, 0, screenCount)
	for s := range screenCount {
		if s == m.screen {
			tabs = append(tabs, activeTabStyle.Render(s.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(s.String()))
		}
	}
	return row(gradient(appTitle, colorPrimary, colorSecondary), strings.Join(tabs, ""), m.width)
}

func (m Model) viewFooter() string {
	lines := make([]string, 0, 2)
	if m.status != "" {
		lines = append(lines, ansi.Truncate(errorStyle.Render(m.status), m.width, "…"))
	}
	lines = append(lines, subtleStyle.Render(truncate(screenHelp[m.screen], m.width)))
	return strings.Join(lines, "\n")
}

func (m Model) viewStart(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Open a playlist"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Recent"))
		b.WriteString("\n")
		for i, r := range m.recent {
			when := humanize.Time(r.LastUsed)
			line := row(truncate(r.Path, width-len(when)-2), subtleStyle.Render(when), width)
			if i == m.recentIdx {
				line = cursorStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewPlayer(width int) string {
	s := m.snap
	if s.Track == nil {
		return mutedStyle.Render("Nothing playing") + "\n\n" + m.viewModes()
	}

	var icon string
	switch s.State {
	case playback.StatePlaying:
		icon = playingStyle.Render("▶")
	case playback.StatePaused:
		icon = accentStyle.Render("⏸")
	default:
		icon = mutedStyle.Render("■")
	}

	title := icon + " " + titleStyle.Render(truncate(s.Track.Title, width-2))
	info := mutedStyle.Render(truncate(s.Track.Artist+" · "+s.Track.Album, width))

	timeStr := formatTime(s.TimeSec) + " / " + formatTime(s.LengthSec)
	bar := progressBar(s.TimeSec, s.LengthSec, max(width-lipgloss.Width(timeStr)-1, 5))
	progress := bar + " " + baseStyle.Render(timeStr)

	position := "direct file"
	if !s.Direct {
		position = fmt.Sprintf("track %d/%d · %s", s.Index+1, m.playlistLen(), s.Playlist)
	}

	return strings.Join([]string{
		title,
		info,
		"",
		progress,
		"",
		m.viewModes(),
		subtleStyle.Render(truncate(position, width)),
	}, "\n")
}

func (m Model) viewModes() string {
	s := m.snap
	return fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		mutedStyle.Render("volume"), baseStyle.Render(fmt.Sprintf("%.0f%%", s.Volume)),
		mutedStyle.Render("shuffle"), onOff(s.Shuffle),
		mutedStyle.Render("repeat"), onOff(s.Repeat),
		mutedStyle.Render("mood"), accentStyle.Render(s.Mood.String()),
	)
}

func onOff(b bool) string {
	if b {
		return playingStyle.Render("on")
	}
	return subtleStyle.Render("off")
}

func (m Model) viewPlaylist(width int) string {
	p := m.svc.Playlist()
	if p == nil || p.Len() == 0 {
		return mutedStyle.Render("No playlist loaded")
	}

	tracks := p.Tracks()
	visible := max(m.height-8, 3)
	start := min(max(m.cursor-visible/2, 0), max(len(tracks)-visible, 0))
	end := min(start+visible, len(tracks))

	lines := make([]string, 0, end-start+1)
	lines = append(lines, titleStyle.Render(truncate(p.Name(), width)))
	for i := start; i < end; i++ {
		t := tracks[i]
		marker := "  "
		if !m.snap.Direct && i == m.snap.Index && m.snap.State != playback.StateStopped {
			marker = "▶ "
		}
		length := ""
		if t.Length() > 0 {
			length = formatTime(t.Length())
		}
		label := fmt.Sprintf("%s%3d  %s", marker, i+1, t.String())
		line := fit(label, width-6) + fmt.Sprintf("%6s", length)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case marker != "  ":
			line = playingStyle.Render(line)
		default:
			line = baseStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewMood(width int) string {
	lines := []string{titleStyle.Render("How do you feel?"), ""}
	for i, md := range playback.Moods() {
		label := "  " + md.String()
		if md == m.snap.Mood {
			label = "● " + md.String()
		}
		line := fit(label, width)
		switch {
		case i == m.moodCursor:
			line = cursorStyle.Render(line)
		case md == m.snap.Mood:
			line = accentStyle.Render(line)
		default:
			line = baseStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
