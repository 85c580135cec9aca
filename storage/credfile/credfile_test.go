package credfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/tvqdev/deanboard/client"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if tok := s.Token(); tok != "" {
		t.Errorf("fresh store token = %q, want empty", tok)
	}

	ch := &client.Challenge{
		ID:            "ch-1",
		Username:      "dean01",
		EmailHint:     "d***1@hust.edu.vn",
		IssuedAt:      time.Now().UTC().Truncate(time.Second),
		CooldownUntil: time.Now().UTC().Add(time.Minute).Truncate(time.Second),
	}
	if err := s.SetToken("tok-abc"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetChallenge(ch); err != nil {
		t.Fatal(err)
	}

	// reopen: both survive the restart
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after write error = %v", err)
	}
	if tok := s2.Token(); tok != "tok-abc" {
		t.Errorf("token = %q, want tok-abc", tok)
	}
	got := s2.Challenge()
	if got == nil {
		t.Fatal("challenge did not survive reopen")
	}
	if got.ID != ch.ID || got.Username != ch.Username || got.EmailHint != ch.EmailHint {
		t.Errorf("challenge = %+v, want %+v", got, ch)
	}
	if !got.CooldownUntil.Equal(ch.CooldownUntil) {
		t.Errorf("CooldownUntil = %s, want %s", got.CooldownUntil, ch.CooldownUntil)
	}

	if err := s2.ClearToken(); err != nil {
		t.Fatal(err)
	}
	if err := s2.ClearChallenge(); err != nil {
		t.Fatal(err)
	}
	s3, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if s3.Token() != "" || s3.Challenge() != nil {
		t.Error("cleared credentials survived reopen")
	}
}

func TestFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix file modes")
	}
	path := filepath.Join(t.TempDir(), "creds.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetToken("secret"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("mode = %o, want 600", mode)
	}
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("Open() on corrupt file error = nil")
	}
}

func TestCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "creds.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("credential file missing: %v", err)
	}
}
