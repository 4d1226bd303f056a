// Package store persists the small bits of local state the client keeps
// between runs: the auth token, the cached signed-in profile, and the log
// file location. Everything lives under one dot directory in the user's
// home (~/.fountain by default).
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fountainhq/fountain/pkg/domain"
)

const dirName = ".fountain"

type Store struct {
	dir string
}

// Default returns a store rooted at ~/.fountain.
func Default() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	return New(filepath.Join(home, dirName)), nil
}

// New returns a store rooted at dir. Tests point this at a temp dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) TokenPath() string   { return filepath.Join(s.dir, "token") }
func (s *Store) ProfilePath() string { return filepath.Join(s.dir, "me.json") }
func (s *Store) LogPath() string     { return filepath.Join(s.dir, "fountain.log") }

// ReadToken returns the saved token, or empty when none is saved.
func (s *Store) ReadToken() string {
	data, err := os.ReadFile(s.TokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// WriteToken saves the token with owner-only permissions.
func (s *Store) WriteToken(tok string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create %s dir: %w", dirName, err)
	}
	if err := os.WriteFile(s.TokenPath(), []byte(tok), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// RemoveToken deletes the saved token and the cached profile. Removing
// when nothing is saved reports os.ErrNotExist.
func (s *Store) RemoveToken() error {
	os.Remove(s.ProfilePath()) //nolint:errcheck // cache is best-effort
	if err := os.Remove(s.TokenPath()); err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// ReadProfile loads the cached signed-in profile.
func (s *Store) ReadProfile() (domain.Profile, error) {
	data, err := os.ReadFile(s.ProfilePath())
	if err != nil {
		return domain.Profile{}, err
	}
	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("parse cached profile: %w", err)
	}
	return p, nil
}

// WriteProfile caches the signed-in profile so the TUI can greet the user
// before the first round trip completes.
func (s *Store) WriteProfile(p domain.Profile) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create %s dir: %w", dirName, err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(s.ProfilePath(), data, 0600); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
