package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// historyDocument is the on-disk shape: one JSON document holding the whole
// ordered list.
type historyDocument struct {
	Version  string                `json:"version"`
	Commands []domain.HistoryEntry `json:"commands"`
}

// FilePersister mirrors the history list into a single JSON document.
type FilePersister struct {
	path string
	mu   sync.Mutex
}

// NewFilePersister creates a persister at the given path, defaulting to
// ~/.termgenie/history.json.
func NewFilePersister(path string) *FilePersister {
	if path == "" {
		path = filepath.Join(userHome(), ".termgenie", "history.json")
	}
	return &FilePersister{path: path}
}

// Load implements ports.HistoryPersister. A missing file is an empty list.
func (f *FilePersister) Load() ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc historyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Commands, nil
}

// Save implements ports.HistoryPersister.
func (f *FilePersister) Save(entries []domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	doc := historyDocument{Version: "1.0", Commands: entries}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

// Path returns the backing file path.
func (f *FilePersister) Path() string {
	return f.path
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.HistoryPersister = (*FilePersister)(nil)
