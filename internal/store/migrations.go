package store

// migration is a single versioned schema change.
type migration struct {
	version int
	sql     string
}

// migrations are applied in order; each runs at most once per database.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS cached_items (
	id INTEGER NOT NULL,
	user_id INTEGER NOT NULL,
	item_number INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	priority TEXT NOT NULL,
	complexity TEXT NOT NULL,
	status TEXT NOT NULL,
	parent_item_id INTEGER,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	fetched_at TIMESTAMP NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE INDEX IF NOT EXISTS idx_cached_items_status
	ON cached_items (user_id, status);
CREATE INDEX IF NOT EXISTS idx_cached_items_type
	ON cached_items (user_id, type);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
