package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"

	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

const (
	sessionDirName   = ".conecta-saber"
	sessionFilePerms = 0600 // Read/write for owner only
	sessionDirPerms  = 0700 // Read/write/execute for owner only
)

// Session is the server-issued credential plus the authenticated profile,
// persisted as a unit and cleared as a unit on logout.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"usuario"`
}

// Store is the durable client-side mirror of the current session. There is
// exactly one Store per app, constructed once and handed to the request
// gateway; Clear is the single invalidation point.
//
// Store implements oauth2.TokenSource, so the gateway samples the token
// fresh on every request rather than capturing it at construction time. A
// logout between two requests is therefore visible to the second request.
type Store struct {
	path string

	mu     sync.Mutex
	cached *Session
	loaded bool
}

// NewStore returns a store backed by ~/.conecta-saber/session-<env>.json.
func NewStore(env string) (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	path := filepath.Join(homeDir, sessionDirName, fmt.Sprintf("session-%s.json", env))
	return NewStoreAt(path), nil
}

// NewStoreAt returns a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Save persists the session, overwriting any prior one.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), sessionDirPerms); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, sessionFilePerms); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.cached = &sess
	s.loaded = true
	return nil
}

// Current returns the active session, or nil if none exists (before first
// login, or after logout). The file is read once and cached; Save and Clear
// keep the cache coherent.
func (s *Store) Current() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Store) currentLocked() (*Session, error) {
	if s.loaded {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.loaded = true
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	s.cached = &sess
	s.loaded = true
	return s.cached, nil
}

// Clear removes all session state, leaving the store as on a fresh install.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}

	s.cached = nil
	s.loaded = true
	return nil
}

// Token implements oauth2.TokenSource. An absent session yields a token
// with an empty AccessToken rather than an error, so unauthenticated calls
// (login, register) still go out; the gateway skips the Authorization
// header for empty tokens.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.currentLocked()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return &oauth2.Token{}, nil
	}
	return &oauth2.Token{AccessToken: sess.Token, TokenType: "Bearer"}, nil
}

var _ oauth2.TokenSource = (*Store)(nil)
