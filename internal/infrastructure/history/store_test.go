package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/termgenie/termgenie/internal/domain"
)

func commands(entries []domain.HistoryEntry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Command)
	}
	return out
}

func TestAddInsertsAtFront(t *testing.T) {
	store := NewStore(10, nil, nil)
	store.Add("list files", "ls", "")
	store.Add("disk usage", "df -h", "")

	got := commands(store.All())
	want := []string{"df -h", "ls"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDeduplicatesByPromptCommandPair(t *testing.T) {
	store := NewStore(10, nil, nil)
	store.Add("list files", "ls", "")
	store.Add("disk usage", "df -h", "")
	store.Add("list files", "ls", "")

	if store.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", store.Count())
	}
	entries := store.All()
	if entries[0].Command != "ls" {
		t.Fatalf("re-added entry should move to front, got %q", entries[0].Command)
	}
	if entries[0].UseCount != 2 {
		t.Fatalf("UseCount = %d, want 2", entries[0].UseCount)
	}

	// Same command under a different prompt is a distinct entry.
	store.Add("show files", "ls", "")
	if store.Count() != 3 {
		t.Fatalf("Count() = %d, want 3 (identity is the pair)", store.Count())
	}
}

func TestAddRefreshesLastUsed(t *testing.T) {
	store := NewStore(10, nil, nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	store.Add("list files", "ls", "")

	store.now = func() time.Time { return base.Add(time.Hour) }
	store.Add("list files", "ls", "")

	entry := store.All()[0]
	if !entry.LastUsed.Equal(base.Add(time.Hour)) {
		t.Fatalf("LastUsed = %v, want %v", entry.LastUsed, base.Add(time.Hour))
	}
	if !entry.CreatedAt.Equal(base) {
		t.Fatalf("CreatedAt changed on refresh: %v", entry.CreatedAt)
	}
}

func TestAliasOverwriteOnlyWhenSupplied(t *testing.T) {
	store := NewStore(10, nil, nil)
	store.Add("clean logs", "rm *.log", "cleanup")
	store.Add("clean logs", "rm *.log", "")
	if got := store.All()[0].Alias; got != "cleanup" {
		t.Fatalf("empty alias must not clear existing one, got %q", got)
	}

	store.Add("clean logs", "rm *.log", "logclean")
	if got := store.All()[0].Alias; got != "logclean" {
		t.Fatalf("non-empty alias must overwrite, got %q", got)
	}

	entry, ok := store.ByAlias("logclean")
	if !ok || entry.Command != "rm *.log" {
		t.Fatalf("ByAlias lookup failed: %+v ok=%v", entry, ok)
	}
}

func TestEvictionDropsLeastRecentlyUsed(t *testing.T) {
	store := NewStore(3, nil, nil)
	store.Add("a", "A", "")
	store.Add("b", "B", "")
	store.Add("c", "C", "")
	store.Add("d", "D", "")

	got := commands(store.All())
	want := []string{"D", "C", "B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("eviction mismatch (-want +got):\n%s", diff)
	}
}

func TestSizeNeverExceedsMaxItems(t *testing.T) {
	store := NewStore(5, nil, nil)
	inputs := []string{"A", "B", "C", "A", "D", "E", "F", "B", "G", "H"}
	for _, cmd := range inputs {
		store.Add("p:"+cmd, cmd, "")
		if store.Count() > 5 {
			t.Fatalf("size %d exceeds max_items after adding %q", store.Count(), cmd)
		}
	}
}

func TestEmptyCommandIsNoOp(t *testing.T) {
	store := NewStore(3, nil, nil)
	store.Add("blank", "   ", "")
	if store.Count() != 0 {
		t.Fatalf("empty command must not be stored, count=%d", store.Count())
	}
}

func TestSearchMatchesPromptCommandAndAlias(t *testing.T) {
	store := NewStore(10, nil, nil)
	store.Add("find big files", "du -sh * | sort -h", "bigfiles")
	store.Add("list processes", "ps aux", "")

	if got := store.Search("BIG"); len(got) != 1 || got[0].Alias != "bigfiles" {
		t.Fatalf("case-insensitive search failed: %+v", got)
	}
	if got := store.Search("ps aux"); len(got) != 1 {
		t.Fatalf("command search failed: %+v", got)
	}
	if got := store.Search("nothing"); len(got) != 0 {
		t.Fatalf("expected no results, got %+v", got)
	}
}

func TestStoreRoundTripsThroughFilePersister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	persister := NewFilePersister(path)

	store := NewStore(10, persister, nil)
	store.Add("list files", "ls", "")
	store.Add("disk usage", "df -h", "disk")

	reloaded := NewStore(10, NewFilePersister(path), nil)
	got := commands(reloaded.All())
	want := []string{"df -h", "ls"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted order mismatch (-want +got):\n%s", diff)
	}
	if entry, ok := reloaded.ByAlias("disk"); !ok || entry.Command != "df -h" {
		t.Fatalf("alias lost through persistence: %+v ok=%v", entry, ok)
	}
}

func TestStoreLoadRespectsCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	seed := NewStore(10, NewFilePersister(path), nil)
	for _, cmd := range []string{"A", "B", "C", "D", "E"} {
		seed.Add("p:"+cmd, cmd, "")
	}

	capped := NewStore(3, NewFilePersister(path), nil)
	if capped.Count() != 3 {
		t.Fatalf("Count() = %d, want 3 after capped load", capped.Count())
	}
	got := commands(capped.All())
	want := []string{"E", "D", "C"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("capped load mismatch (-want +got):\n%s", diff)
	}
}
