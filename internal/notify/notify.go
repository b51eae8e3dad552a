// Package notify posts desktop notifications when the playing track changes.
package notify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/llehouerou/moodplayer/internal/playback"
	"github.com/llehouerou/moodplayer/internal/playlist"
)

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// DefaultTimeout is how long a track notification stays visible, in ms.
const DefaultTimeout int32 = 5000

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Run posts a notification for every track change on sub until ctx is done
// or the subscription closes. Each notification replaces the previous one,
// and the last one is closed on return.
func Run(ctx context.Context, sub *playback.Subscription, n Notifier, log zerolog.Logger) {
	var (
		lastID uint32
		mood   playback.Mood
	)
	defer func() {
		if lastID != 0 {
			_ = n.Close(lastID)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.MoodChanged:
			mood = e.Mood
		case e := <-sub.TrackChanged:
			if e.Track == nil {
				continue
			}
			notif := trackNotification(e.Track, mood)
			notif.ReplacesID = lastID
			id, err := n.Notify(notif)
			if err != nil {
				log.Debug().Err(err).Str("path", e.Track.Path).Msg("track notification failed")
				continue
			}
			lastID = id
		}
	}
}

func trackNotification(t *playlist.Track, mood playback.Mood) Notification {
	var parts []string
	for _, s := range []string{t.Artist, t.Album} {
		if s != "" && s != playlist.Unknown {
			parts = append(parts, s)
		}
	}
	body := strings.Join(parts, " · ")
	if mood != playback.MoodNone {
		if body != "" {
			body += "\n"
		}
		body += "Mood: " + mood.String()
	}

	title := t.Title
	if title == "" || title == playlist.Unknown {
		title = t.Path
	}
	return Notification{
		Title:   title,
		Body:    body,
		Icon:    FindAlbumArtPath(t.Path),
		Timeout: DefaultTimeout,
		Urgency: UrgencyLow,
	}
}
