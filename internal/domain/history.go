package domain

import "time"

// HistoryEntry records one accepted (prompt, command) pair. The pair is the
// identity key: re-adding the same pair bumps UseCount instead of inserting
// a duplicate.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Command   string    `json:"command"`
	Alias     string    `json:"alias,omitempty"`
	UseCount  int       `json:"use_count"`
	LastUsed  time.Time `json:"last_used"`
	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether the entry carries the given identity key.
// Matching is case-sensitive and exact.
func (e HistoryEntry) Matches(prompt, command string) bool {
	return e.Prompt == prompt && e.Command == command
}
