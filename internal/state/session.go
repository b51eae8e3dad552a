package state

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	dbutil "github.com/llehouerou/moodplayer/internal/db"
)

// Session is the listening session restored on the next start.
type Session struct {
	Source     string // playlist file or folder
	TrackIndex int
	Volume     float64
	Shuffle    bool
	Repeat     bool
	Mood       string
}

// RecentSource is a previously opened playlist file or folder.
type RecentSource struct {
	Path     string
	LastUsed time.Time
}

func getSession(db *sql.DB) (*Session, error) {
	row := db.QueryRow(`
		SELECT source, track_index, volume, shuffle, repeat, mood
		FROM session WHERE id = 1
	`)

	var s Session
	var index sql.NullInt64
	var mood sql.NullString
	err := row.Scan(&s.Source, &index, &s.Volume, &s.Shuffle, &s.Repeat, &mood)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, errors.Wrap(err, "read session")
	}
	s.TrackIndex = int(dbutil.NullInt64Value(index))
	s.Mood = dbutil.NullStringValue(mood)
	return &s, nil
}

// saveSession writes the session and bumps its source in recent_sources.
func saveSession(ctx context.Context, db *sql.DB, s Session, now time.Time) error {
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session (id, source, track_index, volume, shuffle, repeat, mood, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				source = excluded.source,
				track_index = excluded.track_index,
				volume = excluded.volume,
				shuffle = excluded.shuffle,
				repeat = excluded.repeat,
				mood = excluded.mood,
				updated_at = excluded.updated_at
		`, s.Source, s.TrackIndex, s.Volume, s.Shuffle, s.Repeat, s.Mood, now.Unix())
		if err != nil {
			return errors.Wrap(err, "write session")
		}

		if s.Source == "" {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO recent_sources (path, last_used_at) VALUES (?, ?)
			ON CONFLICT(path) DO UPDATE SET last_used_at = excluded.last_used_at
		`, s.Source, now.UnixNano())
		return errors.Wrap(err, "record recent source")
	})
}

func recentSources(db *sql.DB, limit int) ([]RecentSource, error) {
	rows, err := db.Query(`
		SELECT path, last_used_at FROM recent_sources
		ORDER BY last_used_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list recent sources")
	}
	defer rows.Close()

	var sources []RecentSource
	for rows.Next() {
		var r RecentSource
		var usedAt int64
		if err := rows.Scan(&r.Path, &usedAt); err != nil {
			return nil, errors.Wrap(err, "scan recent source")
		}
		r.LastUsed = time.Unix(0, usedAt)
		sources = append(sources, r)
	}
	return sources, errors.Wrap(rows.Err(), "list recent sources")
}
