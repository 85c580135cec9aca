// Package credfile persists client credentials (bearer token, pending OTP
// challenge) in a JSON file so a session survives process restarts.
package credfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/tvqdev/deanboard/client"
)

type fileState struct {
	Token     string            `json:"token,omitempty"`
	Challenge *client.Challenge `json:"challenge,omitempty"`
}

// Store is a file-backed client.CredentialStore. The file is created 0600 since
// it holds a live bearer token. All mutations rewrite the whole file under a
// lock; the state is two small fields, not worth anything fancier.
type Store struct {
	mu    sync.RWMutex
	path  string
	state fileState
}

var _ client.CredentialStore = (*Store)(nil)

// Open loads the store at path, creating its directory if needed. A missing or
// empty file is a valid anonymous session; a corrupt file is an error so the
// operator can delete it deliberately.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "credfile: creating directory")
	}
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "credfile: reading")
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, errors.Wrapf(err, "credfile: %s is corrupt", path)
	}
	return s, nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.flush()
}

func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	return s.flush()
}

func (s *Store) Challenge() *client.Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Challenge == nil {
		return nil
	}
	ch := *s.state.Challenge
	return &ch
}

func (s *Store) SetChallenge(ch *client.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch == nil {
		s.state.Challenge = nil
	} else {
		cp := *ch
		s.state.Challenge = &cp
	}
	return s.flush()
}

func (s *Store) ClearChallenge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Challenge = nil
	return s.flush()
}

// flush writes atomically: temp file in the same directory, then rename.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "credfile: encoding")
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".creds-*")
	if err != nil {
		return errors.Wrap(err, "credfile: creating temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() //nolint:errcheck
		return errors.Wrap(err, "credfile: setting mode")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return errors.Wrap(err, "credfile: writing")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "credfile: closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "credfile: replacing")
}
