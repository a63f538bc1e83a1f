/*
Package eventlog implements a ledger.EventSink that journals all published
events in a SQLite database. The journal is append only and can be read
back in publication order.
*/
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence   INTEGER NOT NULL,
	topic      TEXT NOT NULL,
	attributes TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS events_topic ON events (topic, id);
`

// Record is a journaled event.
type Record struct {
	ID        int64
	Sequence  uint64
	Event     ledger.Event
	CreatedAt time.Time
}

// Store is a SQLite backed event journal.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ ledger.EventSink = (*Store)(nil)

// Open opens or creates the journal at given path. Use ":memory:" for a
// journal that is not persisted.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.Wrap(errors.ErrInput, "storage path is required")
	}
	dsn := ":memory:"
	if path != dsn {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open sqlite db: %s", err)
	}
	// A memory database exists only within a single connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create schema: %s", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Publish appends all events to the journal in a single database
// transaction. The ledger sequence is taken from the context.
func (s *Store) Publish(ctx ledger.Context, events ...ledger.Event) error {
	if len(events) == 0 {
		return nil
	}
	seq, _ := ledger.GetSequence(ctx)
	created := s.now().UTC().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "begin: %s", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO events (sequence, topic, attributes, created_at)
VALUES (?, ?, ?, ?)
`)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "prepare: %s", err)
	}
	defer stmt.Close()

	for _, e := range events {
		attrs, err := json.Marshal(e.Attributes)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "attributes of %s: %s", e.Topic, err)
		}
		if _, err := stmt.ExecContext(ctx, int64(seq), e.Topic, string(attrs), created); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "insert %s: %s", e.Topic, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	return nil
}

// List returns up to limit events with an id greater than after, oldest
// first. An empty topic matches all events.
func (s *Store) List(ctx context.Context, topic string, after int64, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, errors.Wrap(errors.ErrInput, "limit must be greater than zero")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, sequence, topic, attributes, created_at
FROM events
WHERE id > ? AND (? = '' OR topic = ?)
ORDER BY id
LIMIT ?
`, after, topic, topic, limit)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "list events: %s", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			seq     int64
			attrs   string
			created int64
		)
		if err := rows.Scan(&r.ID, &seq, &r.Event.Topic, &attrs, &created); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "scan event: %s", err)
		}
		if err := json.Unmarshal([]byte(attrs), &r.Event.Attributes); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "event %d attributes: %s", r.ID, err)
		}
		r.Sequence = uint64(seq)
		r.CreatedAt = time.UnixMilli(created).UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "iterate events: %s", err)
	}
	return records, nil
}

// Count returns the number of journaled events with given topic. An empty
// topic counts all events.
func (s *Store) Count(ctx context.Context, topic string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE ? = '' OR topic = ?`, topic, topic).Scan(&n)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrDatabase, "count events: %s", err)
	}
	return n, nil
}
