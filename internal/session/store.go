// Package session keeps the signed-in user's tokens between runs.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pantry/internal/domain"
)

// Session is what is persisted for a signed-in user
type Session struct {
	Username string        `toml:"username"`
	Tokens   domain.Tokens `toml:"tokens"`
	SavedAt  time.Time     `toml:"saved_at"`
}

// Store reads and writes the session file. It is safe for concurrent use;
// the cart manager reads tokens from background goroutines.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath is session.toml next to the config file
func DefaultPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "session.toml")
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored session, or an empty one when signed out
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := toml.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	return sess, nil
}

// Token returns the access token, "" when signed out
func (s *Store) Token() (string, error) {
	sess, err := s.Load()
	if err != nil {
		return "", err
	}
	return sess.Tokens.AccessToken, nil
}

// Save stores tokens for username. The file is only readable by the owner.
func (s *Store) Save(username string, tokens domain.Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := toml.Marshal(Session{
		Username: username,
		Tokens:   tokens,
		SavedAt:  time.Now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear signs out. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
