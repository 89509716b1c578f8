package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DC111-ui/hss-storage-platform/models"
)

// SessionStore persists the session credential (token, role, base URL) as a
// JSON file so it survives restarts until an explicit sign-out. This is the
// CLI equivalent of the browser's local storage.
type SessionStore struct {
	Path string
}

// DefaultSessionStore places the session file under the user config dir.
func DefaultSessionStore() (*SessionStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &SessionStore{Path: filepath.Join(dir, "hss", "session.json")}, nil
}

// Load reads the persisted session. A missing file yields an empty session,
// not an error.
func (s *SessionStore) Load() (models.Session, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Save writes the session, creating parent directories as needed.
func (s *SessionStore) Save(session models.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0o600)
}

// Clear removes the persisted session; used on sign-out.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
