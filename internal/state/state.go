// Package state persists the listening session in a SQLite database.
package state

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver
)

const saveDebounce = 500 * time.Millisecond

// Manager reads and writes the session state. Debounced saves run on a timer
// and are flushed by Close.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Session
	inflight  sync.WaitGroup
	closed    bool
	debounce  time.Duration
	now       func() time.Time
}

// Open opens or creates the state database at path. ":memory:" opens a
// private in-memory database.
func Open(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "create state directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open state database")
	}
	// A single connection keeps in-memory databases shared and serialises writes.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, debounce: saveDebounce, now: time.Now}, nil
}

// Close flushes a pending debounced save, waits for a save already being
// written and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.closed {
		m.saveMu.Unlock()
		return nil
	}
	m.closed = true
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	m.inflight.Wait()

	if pending != nil {
		if err := saveSession(context.Background(), m.db, *pending, m.now()); err != nil {
			zlog.Error().Err(err).Msg("flush session on close")
		}
	}

	return m.db.Close()
}

// GetSession returns the saved session, or nil if none was saved yet.
func (m *Manager) GetSession() (*Session, error) {
	return getSession(m.db)
}

// SaveSession schedules a save. Calls within the debounce window coalesce
// into one write of the latest session.
func (m *Manager) SaveSession(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	if m.closed {
		return
	}
	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.debounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		if pending == nil {
			m.saveMu.Unlock()
			return
		}
		m.inflight.Add(1)
		m.saveMu.Unlock()
		defer m.inflight.Done()

		if err := saveSession(context.Background(), m.db, *pending, m.now()); err != nil {
			zlog.Error().Err(err).Msg("save session")
		}
	})
}

// SaveSessionNow writes the session immediately, dropping any pending save.
func (m *Manager) SaveSessionNow(ctx context.Context, s Session) error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.saveMu.Unlock()

	return saveSession(ctx, m.db, s, m.now())
}

// RecentSources returns up to limit sources, most recently used first.
func (m *Manager) RecentSources(limit int) ([]RecentSource, error) {
	return recentSources(m.db, limit)
}
