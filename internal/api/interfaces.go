package api

import (
	"context"

	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/session"
)

// CatalogLoader defines the one-shot catalog fetch needed by handlers.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// SnapshotCache defines the cache operations needed by handlers.
type SnapshotCache interface {
	Get(ctx context.Context) (*catalog.Snapshot, error)
	Set(ctx context.Context, snap *catalog.Snapshot) error
	Delete(ctx context.Context) error
}

// SessionStore defines the session registry needed by handlers.
type SessionStore interface {
	Create(snap *catalog.Snapshot, loadErr error) session.View
	Do(id string, fn func(*session.Session) error) error
	Delete(id string)
}

// Pinger is implemented by backends the health check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}
