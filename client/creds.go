package client

import (
	"sync"
	"time"
)

// Challenge is an in-progress OTP second factor: issued on a dean login, kept
// until verified or abandoned. It survives a client restart (the file-backed
// store persists it) so a half-finished login can resume.
type Challenge struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	EmailHint     string    `json:"email_hint,omitempty"`
	IssuedAt      time.Time `json:"issued_at"`
	CooldownUntil time.Time `json:"cooldown_until"`
}

// CredentialStore persists the only two pieces of client state that outlive a
// screen: the bearer token and a pending OTP challenge. Implementations must be
// safe for concurrent use.
type CredentialStore interface {
	Token() string
	SetToken(token string) error
	ClearToken() error

	Challenge() *Challenge
	SetChallenge(ch *Challenge) error
	ClearChallenge() error
}

// MemoryStore keeps credentials for the lifetime of the process; the default
// store and the test double.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	ch    *Challenge
}

var _ CredentialStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemoryStore) Challenge() *Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ch == nil {
		return nil
	}
	ch := *s.ch
	return &ch
}

func (s *MemoryStore) SetChallenge(ch *Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch == nil {
		s.ch = nil
		return nil
	}
	cp := *ch
	s.ch = &cp
	return nil
}

func (s *MemoryStore) ClearChallenge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ch = nil
	return nil
}
