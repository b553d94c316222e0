// Package secret stores backend API keys in a credentials file under the
// user's config directory. Keys set through the environment always win so a
// session can override the stored value without touching the file.
package secret

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

const envPrefix = "TERMGENIE_"

// FileStore keeps named secrets as a JSON object in a mode-0600 file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the credentials file location inside the config
// directory, honouring the TERMGENIE_CONFIG override.
func DefaultPath() (string, error) {
	if dir := os.Getenv("TERMGENIE_CONFIG"); dir != "" {
		return filepath.Join(dir, "credentials.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", domain.NewSecretStoreError("resolve home directory", err)
	}
	return filepath.Join(home, ".termgenie", "credentials.json"), nil
}

// Get returns the secret for name, or empty with no error when it is not
// stored anywhere. The environment variable TERMGENIE_<NAME> takes priority.
func (s *FileStore) Get(name string) (string, error) {
	if value := os.Getenv(envVarFor(name)); value != "" {
		return value, nil
	}
	secrets, err := s.load()
	if err != nil {
		return "", err
	}
	return secrets[name], nil
}

// Set writes the secret for name, creating the credentials file on first use.
func (s *FileStore) Set(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewSecretStoreError("secret name must not be empty", nil)
	}
	secrets, err := s.load()
	if err != nil {
		return err
	}
	if secrets == nil {
		secrets = map[string]string{}
	}
	secrets[name] = value

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return domain.NewSecretStoreError("create config directory", err)
	}
	data, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return domain.NewSecretStoreError("encode credentials", err)
	}
	if err := os.WriteFile(s.path, data, domain.SecureFilePermissions); err != nil {
		return domain.NewSecretStoreError("write credentials file", err)
	}
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.NewSecretStoreError("read credentials file", err)
	}
	var secrets map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, domain.NewSecretStoreError(fmt.Sprintf("parse %s", filepath.Base(s.path)), err)
	}
	return secrets, nil
}

func envVarFor(name string) string {
	upper := strings.ToUpper(name)
	upper = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, upper)
	return envPrefix + upper + "_API_KEY"
}

var _ ports.SecretStore = (*FileStore)(nil)
