package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
)

// PasswordStore is a local-user password store for CLI operators who are
// not backed by an external identity provider. It never appears in
// AuthzConfig: group/permission membership still resolves to usernames the
// way it always has, this only stores a verifiable password per username.
// `patchplan auth set-password` writes it; no CLI command calls Verify.
type PasswordStore struct {
	path   string
	hashes map[string]string // username -> bcrypt hash
}

// LoadPasswordStore reads a password store from path. A missing file
// yields an empty store rather than an error, matching settings.Load's
// first-run behavior.
func LoadPasswordStore(path string) (*PasswordStore, error) {
	ps := &PasswordStore{path: path, hashes: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ps, nil
		}
		return nil, fmt.Errorf("auth: read password store: %w", err)
	}
	if err := json.Unmarshal(data, &ps.hashes); err != nil {
		return nil, fmt.Errorf("auth: parse password store: %w", err)
	}
	return ps, nil
}

// SetPassword hashes password with bcrypt and stores it for username,
// overwriting any prior entry.
func (ps *PasswordStore) SetPassword(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	ps.hashes[username] = string(hash)
	return nil
}

// Verify reports whether password matches the stored hash for username.
func (ps *PasswordStore) Verify(username, password string) error {
	hash, ok := ps.hashes[username]
	if !ok {
		return fmt.Errorf("auth: no password set for user %q", username)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HasPassword reports whether username has a password set.
func (ps *PasswordStore) HasPassword(username string) bool {
	_, ok := ps.hashes[username]
	return ok
}

// Save writes the password store back to its path.
func (ps *PasswordStore) Save() error {
	dir := filepath.Dir(ps.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("auth: create password store directory: %w", err)
	}
	data, err := json.MarshalIndent(ps.hashes, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: marshal password store: %w", err)
	}
	return os.WriteFile(ps.path, data, 0600)
}

// DefaultPasswordStorePath returns ~/.patchplan/passwd.json, mirroring
// settings.DefaultSettingsPath's layout.
func DefaultPasswordStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "patchplan_passwd.json"
	}
	return filepath.Join(home, ".patchplan", "passwd.json")
}
