package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/welldanyogia/inboxzero/internal/models"
)

// ErrNoSession is returned by SessionStore.Load when nothing is stored
var ErrNoSession = errors.New("no saved session")

// Session is the signed-in state of the client
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Valid reports whether the session carries a token
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// SessionStore persists the client session between runs
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileSessionStore keeps the session as JSON in a single file readable only by the owner
type FileSessionStore struct {
	path string
}

// NewFileSessionStore creates a store backed by path
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// Path returns the backing file
func (f *FileSessionStore) Path() string {
	return f.path
}

// Load reads the session file. A missing or empty file yields ErrNoSession.
func (f *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if !s.Valid() {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Save writes the session with mode 0600, creating the parent directory
func (f *FileSessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps the session in memory
type MemorySessionStore struct {
	mu      sync.Mutex
	session *Session
}

// NewMemorySessionStore creates an empty in-memory store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// Load returns a copy of the stored session
func (m *MemorySessionStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.Valid() {
		return nil, ErrNoSession
	}
	s := *m.session
	return &s, nil
}

// Save stores a copy of s
func (m *MemorySessionStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.session = &cp
	return nil
}

// Clear drops the stored session
func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
