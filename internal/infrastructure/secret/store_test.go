package secret

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/termgenie/termgenie/internal/domain"
)

func TestSetThenGetRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))

	if err := store.Set("gemini", "abc123"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := store.Get("gemini")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("Get = %q", got)
	}
}

func TestGetMissingReturnsEmptyWithoutError(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))

	got, err := store.Get("never-stored")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "" {
		t.Fatalf("Get = %q, want empty", got)
	}
}

func TestEnvironmentOverridesStoredValue(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	if err := store.Set("gemini", "stored"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	t.Setenv("TERMGENIE_GEMINI_API_KEY", "from-env")

	got, err := store.Get("gemini")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("Get = %q, want from-env", got)
	}
}

func TestSetPreservesOtherSecrets(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	if err := store.Set("gemini", "one"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := store.Set("anthropic", "two"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := store.Get("gemini")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "one" {
		t.Fatalf("Get = %q, want one", got)
	}
}

func TestCredentialsFileIsPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)
	if err := store.Set("gemini", "abc123"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != domain.SecureFilePermissions {
		t.Fatalf("credentials file mode = %o, want %o", perm, domain.SecureFilePermissions)
	}
}

func TestCorruptFileSurfacesSecretStoreError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	store := NewFileStore(path)
	_, err := store.Get("gemini")
	if !domain.IsKind(err, domain.ErrSecretStore) {
		t.Fatalf("expected secret store error, got %v", err)
	}
}
