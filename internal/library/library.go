package library

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"media-runtime/internal/logging"
	"media-runtime/internal/metrics"
)

// Item is one entry in the media library.
type Item struct {
	ID      int64     `json:"id"`
	Path    string    `json:"path"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"addedAt"`
}

// Library is the persistent media-item store backing the shared
// playlist. All methods are safe for concurrent use; SQLite serializes
// writers and WAL mode keeps readers unblocked.
type Library struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the library database at path and initializes
// the schema. The parent directory must exist and be writable.
func Open(path string) (*Library, error) {
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close library after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to library database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_items_added_at ON items(added_at);`

	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close library after schema failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize library schema: %w", err)
	}

	logging.Info("Media library opened at %s", path)
	return &Library{db: db, path: path}, nil
}

// Add inserts an item, or refreshes its title if the path is already
// known. Returns the stored item.
func (l *Library) Add(path, title string) (Item, error) {
	res, err := l.db.Exec(
		`INSERT INTO items (path, title) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET title = excluded.title`,
		path, title,
	)
	if err != nil {
		metrics.LibraryQueriesTotal.WithLabelValues("add", "error").Inc()
		return Item{}, fmt.Errorf("failed to add library item: %w", err)
	}
	metrics.LibraryQueriesTotal.WithLabelValues("add", "ok").Inc()

	id, err := res.LastInsertId()
	if err != nil {
		id = 0
	}
	return Item{ID: id, Path: path, Title: title, AddedAt: time.Now()}, nil
}

// Items returns every library item in insertion order.
func (l *Library) Items() ([]Item, error) {
	rows, err := l.db.Query(`SELECT id, path, title, added_at FROM items ORDER BY id`)
	if err != nil {
		metrics.LibraryQueriesTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to query library items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Path, &it.Title, &it.AddedAt); err != nil {
			metrics.LibraryQueriesTotal.WithLabelValues("list", "error").Inc()
			return nil, fmt.Errorf("failed to scan library item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		metrics.LibraryQueriesTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to iterate library items: %w", err)
	}

	metrics.LibraryQueriesTotal.WithLabelValues("list", "ok").Inc()
	return items, nil
}

// Count returns the number of items in the library.
func (l *Library) Count() (int, error) {
	var n int
	if err := l.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		metrics.LibraryQueriesTotal.WithLabelValues("count", "error").Inc()
		return 0, fmt.Errorf("failed to count library items: %w", err)
	}
	metrics.LibraryQueriesTotal.WithLabelValues("count", "ok").Inc()
	return n, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	logging.Debug("Closing media library at %s", l.path)
	return l.db.Close()
}
