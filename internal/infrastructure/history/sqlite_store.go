package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// SQLitePersister mirrors the history list into a SQLite database. Ordering
// is preserved through an explicit position column; the in-memory store owns
// recency, the database only records it.
type SQLitePersister struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLitePersister creates (or opens) the database at the given path,
// defaulting to ~/.termgenie/history.db. When the database cannot be opened
// the persister degrades to the JSON file next to it.
func NewSQLitePersister(path string) ports.HistoryPersister {
	if path == "" {
		path = filepath.Join(userHome(), ".termgenie", "history.db")
	}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return NewFilePersister(jsonFallbackPath(path))
	}
	store := &SQLitePersister{db: db, path: path}
	if err := store.init(); err != nil {
		return NewFilePersister(jsonFallbackPath(path))
	}
	return store
}

func (s *SQLitePersister) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		prompt TEXT NOT NULL,
		command TEXT NOT NULL,
		alias TEXT,
		use_count INTEGER NOT NULL,
		last_used TEXT NOT NULL,
		created_at TEXT NOT NULL,
		position INTEGER NOT NULL
	);`)
	return err
}

// Load implements ports.HistoryPersister.
func (s *SQLitePersister) Load() ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT id, prompt, command, alias, use_count, last_used, created_at
		FROM entries ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var alias sql.NullString
		var lastUsed, createdAt string
		if err := rows.Scan(&entry.ID, &entry.Prompt, &entry.Command, &alias, &entry.UseCount, &lastUsed, &createdAt); err != nil {
			return nil, err
		}
		entry.Alias = alias.String
		if t, err := time.Parse(domain.TimestampFormat, lastUsed); err == nil {
			entry.LastUsed = t
		}
		if t, err := time.Parse(domain.TimestampFormat, createdAt); err == nil {
			entry.CreatedAt = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Save implements ports.HistoryPersister. The whole list is rewritten in one
// transaction; the list is small by construction (bounded by max_items).
func (s *SQLitePersister) Save(entries []domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		tx.Rollback()
		return err
	}
	for i, entry := range entries {
		_, err := tx.Exec(`INSERT INTO entries
			(id, prompt, command, alias, use_count, last_used, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID,
			entry.Prompt,
			entry.Command,
			entry.Alias,
			entry.UseCount,
			entry.LastUsed.Format(domain.TimestampFormat),
			entry.CreatedAt.Format(domain.TimestampFormat),
			i,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Path returns the sqlite database path.
func (s *SQLitePersister) Path() string {
	return s.path
}

func jsonFallbackPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "history.json")
}

var _ ports.HistoryPersister = (*SQLitePersister)(nil)
