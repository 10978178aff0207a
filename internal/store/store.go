package store

import (
	"context"
	"time"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
)

// Store is the offline read cache. Every successful list fetch overwrites
// the cached rows for that user; the cache is never written back to the
// backend and is consulted only when the backend is unreachable or before
// the first fetch resolves.
type Store interface {
	// UpsertItems inserts or replaces the given items for a user.
	UpsertItems(ctx context.Context, userID int64, items []model.Item) error

	// CachedItems returns cached items matching the filter, applying the
	// same type/status/priority/search semantics as the backend list
	// endpoint, with page/size windowing.
	CachedItems(ctx context.Context, userID int64, filters api.ItemFilters) ([]model.Item, error)

	// CachedItem returns one cached item, or nil when absent.
	CachedItem(ctx context.Context, userID, itemID int64) (*model.Item, error)

	// DeleteItems drops cached rows after a confirmed backend delete.
	DeleteItems(ctx context.Context, userID int64, itemIDs []int64) error

	// LastFetched reports when the user's cache was last refreshed.
	// The zero time means the cache is empty.
	LastFetched(ctx context.Context, userID int64) (time.Time, error)

	Close() error
}
