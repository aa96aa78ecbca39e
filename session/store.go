package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LoginClient is the one API operation the store depends on. *api.Client
// satisfies it.
type LoginClient interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}

// Store owns the current session. It is always in one of two states: no
// session, or a fully decoded, unexpired claim set. Consumers must not render
// against it until Initializing reports false.
type Store struct {
	storage TokenStorage
	now     func() time.Time

	mu           sync.RWMutex
	initializing bool
	token        string
	current      *Session
}

func NewStore(storage TokenStorage) *Store {
	return &Store{
		storage:      storage,
		now:          time.Now,
		initializing: true,
	}
}

// Initialize loads a previously persisted token, adopting it when it decodes
// to an unexpired claim set and discarding it (including from storage)
// otherwise. It must be called exactly once at startup; until it returns,
// Initializing reports true.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer func() {
		s.initializing = false
		s.mu.Unlock()
	}()

	token, err := s.storage.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	sess, err := decodeToken(token, s.now())
	if err != nil {
		// Expired or unreadable: drop it so the next boot starts clean.
		if clearErr := s.storage.Clear(); clearErr != nil {
			return clearErr
		}
		return nil
	}

	s.token = token
	s.current = sess
	return nil
}

// Login exchanges credentials for a token through the API client, persists
// the token and adopts the decoded session.
func (s *Store) Login(ctx context.Context, client LoginClient, email, password string) (*Session, error) {
	token, err := client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess, err := decodeToken(token, s.now())
	if err != nil {
		return nil, fmt.Errorf("session: login returned unusable token: %w", err)
	}

	if err := s.storage.Save(token); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = token
	s.current = sess
	s.mu.Unlock()

	copied := *sess
	return &copied, nil
}

// Logout clears the persisted token and the in-memory session.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.current = nil
	s.mu.Unlock()
	return s.storage.Clear()
}

// Current returns the active session, or nil. The returned value is a copy.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token returns the raw bearer token, or "" without a session. It satisfies
// api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Initializing reports whether the startup token check has not finished yet.
func (s *Store) Initializing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initializing
}
