package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSessionDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE session (id INTEGER PRIMARY KEY, source TEXT NOT NULL, track_index INTEGER, mood TEXT)`)
	require.NoError(t, err)
	return db
}

func countSessions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	return n
}

func TestWithTx(t *testing.T) {
	errAbort := errors.New("abort")

	tests := []struct {
		name      string
		fn        func(tx *sql.Tx) error
		wantErr   error
		wantCount int
	}{
		{
			name: "commits writes",
			fn: func(tx *sql.Tx) error {
				_, err := tx.Exec(`INSERT INTO session (source) VALUES (?), (?)`, "/music/a.m3u", "/music/b")
				return err
			},
			wantCount: 2,
		},
		{
			name: "rolls back when fn fails",
			fn: func(tx *sql.Tx) error {
				if _, err := tx.Exec(`INSERT INTO session (source) VALUES (?)`, "/music/a.m3u"); err != nil {
					return err
				}
				return errAbort
			},
			wantErr: errAbort,
		},
		{
			name: "rolls back a failed statement",
			fn: func(tx *sql.Tx) error {
				if _, err := tx.Exec(`INSERT INTO session (source) VALUES (?)`, "/music/a.m3u"); err != nil {
					return err
				}
				_, err := tx.Exec(`INSERT INTO session (source) VALUES (NULL)`)
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openSessionDB(t)

			err := WithTx(context.Background(), db, tt.fn)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCount == 0:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, countSessions(t, db))
		})
	}
}

func TestWithTx_CancelledContext(t *testing.T) {
	db := openSessionDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTx(ctx, db, func(*sql.Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestNullValues_FromScannedRows(t *testing.T) {
	db := openSessionDB(t)
	_, err := db.Exec(`INSERT INTO session (id, source, track_index, mood) VALUES (1, '/music/a.m3u', 3, 'Calm'), (2, '/music/b', NULL, NULL)`)
	require.NoError(t, err)

	tests := []struct {
		id        int
		wantIndex int64
		wantMood  string
	}{
		{id: 1, wantIndex: 3, wantMood: "Calm"},
		{id: 2, wantIndex: 0, wantMood: ""},
	}
	for _, tt := range tests {
		var (
			index sql.NullInt64
			mood  sql.NullString
		)
		require.NoError(t, db.QueryRow(`SELECT track_index, mood FROM session WHERE id = ?`, tt.id).Scan(&index, &mood))

		assert.Equal(t, tt.wantIndex, NullInt64Value(index), "row %d", tt.id)
		assert.Equal(t, tt.wantMood, NullStringValue(mood), "row %d", tt.id)
	}
}

func TestNullValues_IgnoreInvalidPayload(t *testing.T) {
	assert.Equal(t, int64(0), NullInt64Value(sql.NullInt64{Int64: 7}))
	assert.Empty(t, NullStringValue(sql.NullString{String: "stale"}))
}
