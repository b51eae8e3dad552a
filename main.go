package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/moodplayer/internal/app"
	"github.com/llehouerou/moodplayer/internal/config"
	"github.com/llehouerou/moodplayer/internal/errmsg"
	"github.com/llehouerou/moodplayer/internal/logger"
	"github.com/llehouerou/moodplayer/internal/mpris"
	"github.com/llehouerou/moodplayer/internal/notify"
	"github.com/llehouerou/moodplayer/internal/playback"
	"github.com/llehouerou/moodplayer/internal/player"
	"github.com/llehouerou/moodplayer/internal/playlist"
	"github.com/llehouerou/moodplayer/internal/state"
	"github.com/llehouerou/moodplayer/internal/stderr"
	"github.com/llehouerou/moodplayer/internal/tags"
)

type rootOptions struct {
	configPath string
	logLevel   string
	noState    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		stderr.WriteOriginal(err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:          "moodplayer [source]",
		Short:        "Terminal music player for playlists and folders",
		Long:         "Plays an M3U playlist, a folder of audio files or a single audio file. Without a source, the last session or the configured default source is reopened.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) == 1 {
				source = args[0]
			}
			return run(cmd.Context(), opts, source)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.noState, "no-state", false, "do not restore or save the listening session")
	cmd.AddCommand(newScanCmd(&opts))
	return cmd
}

func loadConfig(opts rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
		}
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) (func(), error) {
	closer, err := logger.Init(logger.Config{
		Output:     cfg.Log.Output,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return func() { _ = closer.Close() }, nil
}

func run(ctx context.Context, opts rootOptions, source string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	closeLog, err := initLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Audio libraries write to stderr, which would corrupt the terminal UI.
	if cfg.Log.Output == "file" {
		if err := stderr.Start(zlog.With().Str("component", "stderr").Logger()); err != nil {
			zlog.Warn().Err(err).Msg("stderr capture unavailable")
		} else {
			defer stderr.Stop()
		}
	}

	var (
		st      state.Interface
		session *state.Session
	)
	if cfg.State.Enabled && !opts.noState {
		mgr, err := state.Open(cfg.State.Path)
		if err != nil {
			zlog.Warn().Err(err).Str("path", cfg.State.Path).Msg(errmsg.Format(errmsg.OpSessionLoad, err))
		} else {
			defer func() {
				if err := mgr.Close(); err != nil {
					zlog.Error().Err(err).Msg(errmsg.Format(errmsg.OpSessionSave, err))
				}
			}()
			st = mgr
			session, err = mgr.GetSession()
			if err != nil {
				zlog.Warn().Err(err).Msg(errmsg.Format(errmsg.OpSessionLoad, err))
			}
		}
	}

	engine := newEngine(cfg, session)
	defer engine.Close()

	source, cursor := resolveSource(source, session, cfg.DefaultSource)
	var direct string
	if isAudioFile(source) {
		direct, source = source, ""
	}
	if source != "" {
		pl, err := playlist.Load(source)
		switch {
		case err != nil:
			zlog.Warn().Err(err).Str("source", source).Msg(errmsg.FormatWith(errmsg.OpPlaylistLoad, source, err))
			source = ""
		case pl.Len() == 0:
			zlog.Warn().Str("source", source).Msg("no playable tracks")
			source = ""
		default:
			engine.SetPlaylist(pl)
		}
	}

	if cfg.MPRIS.Enabled {
		adapter, err := mpris.New(engine)
		if err != nil {
			zlog.Warn().Err(err).Msg("media key integration unavailable")
		} else {
			defer adapter.Close()
		}
	}

	if cfg.Notify.Enabled {
		notifier, err := notify.New()
		if err != nil {
			zlog.Warn().Err(err).Msg("desktop notifications unavailable")
		} else {
			notifyCtx, stopNotify := context.WithCancel(ctx)
			defer stopNotify()
			go notify.Run(notifyCtx, engine.Subscribe(), notifier, zlog.With().Str("component", "notify").Logger())
		}
	}

	if direct != "" {
		engine.PlayPath(direct)
	}

	model := app.New(app.Options{Service: engine, State: st, Source: source, Cursor: cursor})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run terminal interface")
	}
	return nil
}

// newEngine builds the playback engine from config, with the saved session
// taking priority for volume, modes and mood.
func newEngine(cfg *config.Config, session *state.Session) *playback.Engine {
	volume := cfg.Playback.Volume
	shuffle, repeat := cfg.Playback.Shuffle, cfg.Playback.Repeat
	mood := playback.MoodNone
	if session != nil {
		volume = session.Volume
		shuffle, repeat = session.Shuffle, session.Repeat
		if m, ok := playback.ParseMood(session.Mood); ok {
			mood = m
		}
	}

	e := playback.New(player.NewBeepBackend(),
		playback.WithLogger(zlog.Logger),
		playback.WithVolume(volume),
		playback.WithSampleInterval(time.Duration(cfg.Playback.SampleIntervalMs)*time.Millisecond),
	)
	e.SetShuffle(shuffle)
	e.SetRepeat(repeat)
	e.SetSelectedMood(mood)
	return e
}

// isAudioFile reports whether source is a single playable file rather than a
// playlist or folder.
func isAudioFile(source string) bool {
	if source == "" || !tags.IsAudioFile(source) {
		return false
	}
	info, err := os.Stat(source)
	return err == nil && info.Mode().IsRegular()
}

// resolveSource picks the playlist source: the command-line argument, then
// the saved session, then the configured default. The saved track index is
// returned only when the session source is the one chosen.
func resolveSource(arg string, session *state.Session, fallback string) (string, int) {
	if arg != "" {
		if abs, err := filepath.Abs(arg); err == nil {
			arg = abs
		}
		if session != nil && session.Source == arg {
			return arg, session.TrackIndex
		}
		return arg, 0
	}
	if session != nil && session.Source != "" {
		return session.Source, session.TrackIndex
	}
	return fallback, 0
}
