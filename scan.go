package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/llehouerou/moodplayer/internal/errmsg"
	"github.com/llehouerou/moodplayer/internal/playlist"
	"github.com/llehouerou/moodplayer/internal/tags"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <source>",
		Short: "List the tracks of a playlist file or folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			cfg.Log.Output = "stderr"
			closeLog, err := initLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			pl, err := playlist.Load(args[0])
			if err != nil {
				return errors.New(errmsg.FormatWith(errmsg.OpPlaylistLoad, args[0], err))
			}
			return printPlaylist(cmd.OutOrStdout(), pl)
		},
	}
}

// printPlaylist writes a table of the playlist tracks with their probed
// stream properties.
func printPlaylist(w io.Writer, pl *playlist.Playlist) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Title", "Artist", "Album", "Length", "Format")

	var total time.Duration
	for i, tr := range pl.Tracks() {
		length, format := "?", "?"
		if info, err := tags.Probe(tr.Path); err == nil {
			length = formatDuration(info.Duration)
			format = fmt.Sprintf("%s %d Hz", info.Format, info.SampleRate)
			total += info.Duration
		}
		t.Row(strconv.Itoa(i+1), tr.Title, tr.Artist, tr.Album, length, format)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%d tracks, %s\n", pl.Name(), t.Render(), pl.Len(), formatDuration(total))
	return err
}

func formatDuration(d time.Duration) string {
	sec := int(d.Round(time.Second).Seconds())
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec/60%60, sec%60)
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
