package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

// columnTypes are the few type names that differ between the two dialects.
type columnTypes struct {
	id        string
	timestamp string
}

func (db *DB) columnTypes() columnTypes {
	if db.driver == DriverPostgres {
		return columnTypes{id: "SERIAL PRIMARY KEY", timestamp: "TIMESTAMPTZ"}
	}
	// AUTOINCREMENT stops SQLite from reusing the id of a deleted max row.
	return columnTypes{id: "INTEGER PRIMARY KEY AUTOINCREMENT", timestamp: "DATETIME"}
}

// migrations create every table. Dates are stored as YYYY-MM-DD text, which
// sorts the same way the calendar does.
var migrations = []struct {
	name string
	ddl  string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id            {{id}},
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    {{timestamp}} NOT NULL
		)`},
	{"sport_categories", `
		CREATE TABLE IF NOT EXISTS sport_categories (
			id   {{id}},
			name TEXT NOT NULL
		)`},
	{"organizations", `
		CREATE TABLE IF NOT EXISTS organizations (
			id                {{id}},
			name              TEXT NOT NULL,
			sport_category_id INTEGER NOT NULL,
			is_okb            BOOLEAN NOT NULL DEFAULT TRUE,
			location          TEXT NOT NULL,
			schedule          TEXT NOT NULL,
			contact           TEXT NOT NULL,
			icon              TEXT NOT NULL
		)`},
	{"events", `
		CREATE TABLE IF NOT EXISTS events (
			id        {{id}},
			title     TEXT NOT NULL,
			date      TEXT NOT NULL,
			location  TEXT NOT NULL,
			time      TEXT NOT NULL,
			fee       TEXT NOT NULL,
			image_url TEXT NOT NULL
		)`},
	{"news", `
		CREATE TABLE IF NOT EXISTS news (
			id        {{id}},
			title     TEXT NOT NULL,
			date      TEXT NOT NULL,
			category  TEXT NOT NULL,
			content   TEXT NOT NULL,
			excerpt   TEXT NOT NULL,
			image_url TEXT NOT NULL
		)`},
	{"gallery_items", `
		CREATE TABLE IF NOT EXISTS gallery_items (
			id        {{id}},
			title     TEXT NOT NULL,
			category  TEXT NOT NULL,
			image_url TEXT NOT NULL
		)`},
	{"messages", `
		CREATE TABLE IF NOT EXISTS messages (
			id         {{id}},
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			subject    TEXT NOT NULL,
			message    TEXT NOT NULL,
			created_at {{timestamp}} NOT NULL
		)`},
	{"join_requests", `
		CREATE TABLE IF NOT EXISTS join_requests (
			id                {{id}},
			name              TEXT NOT NULL,
			email             TEXT NOT NULL,
			phone             TEXT NOT NULL,
			sport_category_id INTEGER NOT NULL,
			message           TEXT,
			created_at        {{timestamp}} NOT NULL
		)`},
	{"idx_events_date", `CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`},
	{"idx_news_date", `CREATE INDEX IF NOT EXISTS idx_news_date ON news(date)`},
	{"idx_organizations_category", `CREATE INDEX IF NOT EXISTS idx_organizations_category ON organizations(sport_category_id)`},
}

// migrate creates any missing table. CREATE ... IF NOT EXISTS makes it safe
// to run on every start.
func (db *DB) migrate(ctx context.Context) error {
	types := db.columnTypes()
	r := strings.NewReplacer("{{id}}", types.id, "{{timestamp}}", types.timestamp)

	for _, m := range migrations {
		if _, err := db.conn.ExecContext(ctx, r.Replace(m.ddl)); err != nil {
			return fmt.Errorf("creating %s: %w", m.name, err)
		}
	}
	return nil
}
