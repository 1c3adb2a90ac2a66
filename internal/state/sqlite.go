package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a short link does not exist.
var ErrNotFound = errors.New("not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates an unopened store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the SQLite database. Use ":memory:" for an in-memory store.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	} else {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateShortLink stores a payload under a fresh ID.
func (s *SQLiteStore) CreateShortLink(ctx context.Context, payload string) (*ShortLink, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	link := &ShortLink{
		ID:        newLinkID(),
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO short_links (id, payload, created_at, hits) VALUES (?, ?, ?, 0)`,
		link.ID, link.Payload, link.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert short link: %w", err)
	}
	return link, nil
}

// GetShortLink resolves a link by ID.
func (s *SQLiteStore) GetShortLink(ctx context.Context, id string) (*ShortLink, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var link ShortLink
	err := s.db.QueryRowContext(ctx,
		`SELECT id, payload, created_at, hits FROM short_links WHERE id = ?`, id).
		Scan(&link.ID, &link.Payload, &link.CreatedAt, &link.Hits)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query short link: %w", err)
	}
	return &link, nil
}

// TouchShortLink increments the hit counter.
func (s *SQLiteStore) TouchShortLink(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	res, err := s.db.ExecContext(ctx, `UPDATE short_links SET hits = hits + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("touch short link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordEvent mirrors an analytics event row.
func (s *SQLiteStore) RecordEvent(ctx context.Context, name, props string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, name, props, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), name, props, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// CountEvents returns the number of events with the given name.
func (s *SQLiteStore) CountEvents(ctx context.Context, name string) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	var n int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE name = ?`, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// newLinkID derives a compact URL-safe ID from a UUID. The first segment is
// enough entropy for a local workbench while keeping links short.
func newLinkID() string {
	u := uuid.New().String()
	return u[:8]
}
