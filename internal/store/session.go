// ABOUTME: Process-wide session store with write-through JSON persistence
// ABOUTME: Mutations are limited to login completion, token refresh, profile set, and logout

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Nirvasoft/A365SS/internal/models"
)

const sessionFile = "session.json"

// Session is the authenticated identity held by the running client.
// The zero value is the logged-out state.
type Session struct {
	Token        string              `json:"token"`
	RefreshToken string              `json:"refreshToken,omitempty"`
	UserID       string              `json:"userId"`
	Domain       string              `json:"domain"`
	DomainName   string              `json:"domainName,omitempty"`
	UserSyskey   string              `json:"usersyskey,omitempty"`
	Role         string              `json:"role,omitempty"`
	User         *models.UserProfile `json:"user,omitempty"`
}

// IsAuthenticated reports whether the session can authenticate calls.
// True exactly when both the bearer token and the user id are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.UserID != ""
}

// SessionStore owns the session record. All readers go through Current;
// writers go through the defined mutation paths, each of which persists
// the new state before returning so the in-memory and on-disk copies
// never diverge.
type SessionStore struct {
	mu      sync.RWMutex
	dir     string
	session Session
}

// OpenSession loads the persisted session from dir, creating dir if
// needed. A missing or unreadable file yields a logged-out store.
func OpenSession(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create data dir: %w", err)
	}

	s := &SessionStore{dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, sessionFile))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Session file unreadable, starting logged out", "error", err)
		}
		return s, nil
	}
	if err := json.Unmarshal(data, &s.session); err != nil {
		slog.Warn("Session file corrupt, starting logged out", "error", err)
		s.session = Session{}
	}
	return s, nil
}

// Current returns a copy of the session.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Complete installs the session produced by a successful login.
func (s *SessionStore) Complete(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return s.persistLocked()
}

// UpdateToken replaces the bearer token after a refresh. Refresh token
// and identity fields are untouched.
func (s *SessionStore) UpdateToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = token
	return s.persistLocked()
}

// SetProfile fills the cached user profile.
func (s *SessionStore) SetProfile(profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.User = profile
	return s.persistLocked()
}

// Logout clears every session field and persists the cleared state.
// The device identity is deliberately left alone.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	return s.persistLocked()
}

// persistLocked writes the session atomically: marshal to a temp file in
// the same directory, then rename over the live file.
func (s *SessionStore) persistLocked() error {
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal session: %w", err)
	}

	path := filepath.Join(s.dir, sessionFile)
	tmp, err := os.CreateTemp(s.dir, sessionFile+".*")
	if err != nil {
		return fmt.Errorf("cannot create session temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cannot write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cannot set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cannot close session temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cannot replace session file: %w", err)
	}
	return nil
}
