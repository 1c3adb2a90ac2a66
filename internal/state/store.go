// Package state provides persistent storage for otelview using SQLite.
// It tracks short links and the analytics event mirror.
package state

import (
	"context"
	"time"
)

// ShortLink is a compact URL alias resolving to a full configuration state.
type ShortLink struct {
	ID        string
	Payload   string // urlstate-encoded configuration
	CreatedAt time.Time
	Hits      int64
}

// Event is one analytics event mirrored into storage.
type Event struct {
	ID        string
	Name      string
	Props     string // JSON-encoded properties
	CreatedAt time.Time
}

// Store is the persistence interface used by the UI server and CLI.
type Store interface {
	// CreateShortLink stores an encoded payload and returns the new link.
	CreateShortLink(ctx context.Context, payload string) (*ShortLink, error)
	// GetShortLink resolves a link by ID without touching the hit counter.
	GetShortLink(ctx context.Context, id string) (*ShortLink, error)
	// TouchShortLink increments the hit counter of a resolved link.
	TouchShortLink(ctx context.Context, id string) error
	// RecordEvent mirrors an analytics event.
	RecordEvent(ctx context.Context, name, props string) error
	// CountEvents returns the number of stored events with the given name.
	CountEvents(ctx context.Context, name string) (int64, error)

	Close() error
}
