package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fountainhq/fountain/pkg/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), ".fountain"))

	if got := s.ReadToken(); got != "" {
		t.Errorf("ReadToken before save = %q, want empty", got)
	}
	if err := s.WriteToken("tok-123"); err != nil {
		t.Fatalf("WriteToken: %v", err)
	}
	if got := s.ReadToken(); got != "tok-123" {
		t.Errorf("ReadToken = %q, want tok-123", got)
	}

	info, err := os.Stat(s.TokenPath())
	if err != nil {
		t.Fatalf("stat token: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token perm = %o, want 600", perm)
	}
}

func TestReadTokenTrimsWhitespace(t *testing.T) {
	s := New(t.TempDir())
	if err := s.WriteToken("tok-123\n"); err != nil {
		t.Fatal(err)
	}
	if got := s.ReadToken(); got != "tok-123" {
		t.Errorf("ReadToken = %q, want trimmed", got)
	}
}

func TestRemoveToken(t *testing.T) {
	s := New(t.TempDir())

	if err := s.RemoveToken(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("RemoveToken with nothing saved = %v, want ErrNotExist", err)
	}

	if err := s.WriteToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteProfile(domain.Profile{ID: "u1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	if got := s.ReadToken(); got != "" {
		t.Errorf("ReadToken after remove = %q, want empty", got)
	}
	if _, err := s.ReadProfile(); err == nil {
		t.Error("cached profile should be removed with the token")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	in := domain.Profile{ID: "u1", Username: "alice", Name: "Alice"}

	if err := s.WriteProfile(in); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}
	out, err := s.ReadProfile()
	if err != nil {
		t.Fatalf("ReadProfile: %v", err)
	}
	if out.ID != in.ID || out.Username != in.Username || out.Name != in.Name {
		t.Errorf("ReadProfile = %+v, want %+v", out, in)
	}
}

func TestReadProfileCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := os.WriteFile(s.ProfilePath(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadProfile(); err == nil {
		t.Error("corrupt cache should return an error")
	}
}
