// Package history implements the bounded, deduplicating command history.
//
// The Store is an LRU-style record, not an append log: re-adding an existing
// (prompt, command) pair refreshes it and moves it to the front, and the
// least-recently-used entry is evicted once capacity is exceeded. Persisters
// mirror the in-memory list on every mutation.
package history

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// Store is the canonical history implementation. All mutations are
// serialized; Add never fails, persistence errors are logged and swallowed.
type Store struct {
	mu        sync.Mutex
	maxItems  int
	entries   []domain.HistoryEntry // front = most recently used
	persister ports.HistoryPersister
	logger    ports.Logger
	now       func() time.Time
}

// NewStore builds a store capped at maxItems (> 0) and primes it from the
// persister when one is supplied. Persisted entries beyond the cap are
// dropped from the back.
func NewStore(maxItems int, persister ports.HistoryPersister, logger ports.Logger) *Store {
	if maxItems <= 0 {
		maxItems = domain.DefaultMaxHistoryItems
	}
	s := &Store{
		maxItems:  maxItems,
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}
	if persister != nil {
		entries, err := persister.Load()
		if err != nil {
			s.warn("history load failed", err)
		} else {
			if len(entries) > maxItems {
				entries = entries[:maxItems]
			}
			s.entries = entries
		}
	}
	return s
}

// Add records an accepted (prompt, command) pair. An existing entry is
// refreshed in place: use count incremented, last-used updated, alias
// overwritten only when a non-empty alias is supplied, and the entry moved
// to the front. Empty commands are a no-op.
func (s *Store) Add(prompt, command, alias string) {
	if strings.TrimSpace(command) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for i, entry := range s.entries {
		if !entry.Matches(prompt, command) {
			continue
		}
		entry.UseCount++
		entry.LastUsed = now
		if alias != "" {
			entry.Alias = alias
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		s.entries = append([]domain.HistoryEntry{entry}, s.entries...)
		s.persist()
		return
	}

	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Command:   command,
		Alias:     alias,
		UseCount:  1,
		LastUsed:  now,
		CreatedAt: now,
	}
	s.entries = append([]domain.HistoryEntry{entry}, s.entries...)
	for len(s.entries) > s.maxItems {
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.persist()
}

// All returns a copy of the entries, most-recently-used first.
func (s *Store) All() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Search returns entries whose prompt, command, or alias contains the query,
// case-insensitively, most-recently-used first.
func (s *Store) Search(query string) []domain.HistoryEntry {
	q := strings.ToLower(query)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.HistoryEntry
	for _, entry := range s.entries {
		if strings.Contains(strings.ToLower(entry.Prompt), q) ||
			strings.Contains(strings.ToLower(entry.Command), q) ||
			(entry.Alias != "" && strings.Contains(strings.ToLower(entry.Alias), q)) {
			out = append(out, entry)
		}
	}
	return out
}

// ByAlias returns the entry with the exact alias, if any.
func (s *Store) ByAlias(alias string) (domain.HistoryEntry, bool) {
	if alias == "" {
		return domain.HistoryEntry{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.Alias == alias {
			return entry, true
		}
	}
	return domain.HistoryEntry{}, false
}

// Count returns the number of stored entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.persist()
}

// persist mirrors the list to the backing store; callers hold the lock.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	snapshot := make([]domain.HistoryEntry, len(s.entries))
	copy(snapshot, s.entries)
	if err := s.persister.Save(snapshot); err != nil {
		s.warn("history save failed", err)
	}
}

func (s *Store) warn(msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(msg, map[string]interface{}{"error": err.Error()})
}

var _ ports.HistoryRepository = (*Store)(nil)
