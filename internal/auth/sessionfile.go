package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	pkgauth "github.com/keepstockhq/keepstock-backend/pkg/auth"
)

const sessionFile = "session.json"

// FileSessionStore persists the active identity as a small JSON file in
// the data directory. A corrupt file reads as no session and is removed.
type FileSessionStore struct {
	path string
}

var _ SessionStore = (*FileSessionStore)(nil)

// NewFileSessionStore keeps the session snapshot under dir.
func NewFileSessionStore(dir string) (*FileSessionStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileSessionStore{path: filepath.Join(dir, sessionFile)}, nil
}

func (s *FileSessionStore) Save(identity pkgauth.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), sessionFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

func (s *FileSessionStore) Load() (*pkgauth.Identity, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var identity pkgauth.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.Store == "" {
		os.Remove(s.path)
		return nil, nil
	}
	return &identity, nil
}

func (s *FileSessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
