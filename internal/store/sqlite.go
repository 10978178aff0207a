package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
)

// SQLiteStore implements Store using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertItems inserts or replaces a batch of cached items.
func (s *SQLiteStore) UpsertItems(
	ctx context.Context,
	userID int64,
	items []model.Item,
) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO cached_items (
			id, user_id, item_number, title, description,
			type, priority, complexity, status, parent_item_id,
			created_at, updated_at, fetched_at, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	fetchedAt := time.Now().UTC()
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling item %d: %w", item.ID, err)
		}

		description := ""
		if item.Description != nil {
			description = *item.Description
		}

		_, err = stmt.ExecContext(ctx,
			item.ID, userID, item.ItemNumber, item.Title, description,
			string(item.Type), string(item.Priority), string(item.Complexity),
			string(item.Status), item.ParentItemID,
			item.CreatedAt.UTC(), item.UpdatedAt.UTC(), fetchedAt,
			string(payload),
		)
		if err != nil {
			return fmt.Errorf("upserting item %d: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// CachedItems retrieves cached items matching the filter.
func (s *SQLiteStore) CachedItems(
	ctx context.Context,
	userID int64,
	filters api.ItemFilters,
) ([]model.Item, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filters.Type != nil && *filters.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(*filters.Type))
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filters.Status))
	}
	if filters.Priority != nil && *filters.Priority != "" {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(*filters.Priority))
	}
	if filters.Search != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + filters.Search + "%"
		args = append(args, q, q)
	}

	query := "SELECT payload FROM cached_items WHERE " + strings.Join(conditions, " AND ")

	sortBy := "updated_at"
	allowedSorts := map[string]string{
		"title":      "title",
		"status":     "status",
		"priority":   "priority",
		"createdAt":  "created_at",
		"updatedAt":  "updated_at",
		"itemNumber": "item_number",
	}
	if col, ok := allowedSorts[filters.SortBy]; ok {
		sortBy = col
	}

	direction := "DESC"
	if strings.EqualFold(filters.SortDirection, "asc") {
		direction = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filters.Size > 0 {
		query += fmt.Sprintf(" LIMIT %d", filters.Size)
		if filters.Page > 0 {
			query += fmt.Sprintf(" OFFSET %d", filters.Page*filters.Size)
		}
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cached items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning cached item: %w", err)
		}
		var item model.Item
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("unmarshaling cached item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// CachedItem retrieves a single cached item, or nil when absent.
func (s *SQLiteStore) CachedItem(
	ctx context.Context,
	userID, itemID int64,
) (*model.Item, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM cached_items WHERE user_id = ? AND id = ?",
		userID, itemID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting cached item %d: %w", itemID, err)
	}

	var item model.Item
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return nil, fmt.Errorf("unmarshaling cached item %d: %w", itemID, err)
	}
	return &item, nil
}

// DeleteItems removes cached rows for the given IDs.
func (s *SQLiteStore) DeleteItems(
	ctx context.Context,
	userID int64,
	itemIDs []int64,
) error {
	if len(itemIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		"DELETE FROM cached_items WHERE user_id = ? AND id IN (?)",
		userID, itemIDs,
	)
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("deleting cached items: %w", err)
	}
	return nil
}

// LastFetched reports the most recent fetch time for the user's cache.
func (s *SQLiteStore) LastFetched(
	ctx context.Context,
	userID int64,
) (time.Time, error) {
	var fetched sql.NullTime
	err := s.db.GetContext(ctx, &fetched,
		"SELECT MAX(fetched_at) FROM cached_items WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading cache fetch time: %w", err)
	}
	if !fetched.Valid {
		return time.Time{}, nil
	}
	return fetched.Time, nil
}
