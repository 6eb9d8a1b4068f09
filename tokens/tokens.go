// Package tokens provides persistent storage for third-party API
// credentials.
package tokens

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ChubAPIToken is the storage key for the Chub API token.
const ChubAPIToken = "botBrowser_chubApiToken"

// Store manages API tokens keyed by name.
type Store struct {
	path   string
	Tokens map[string]string `json:"tokens"`
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "botbrowser"), nil
}

// Load reads tokens from disk, returning an empty store if the file
// doesn't exist yet.
func Load() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "tokens.json"))
}

// LoadFrom loads tokens from a specific file path.
func LoadFrom(path string) (*Store, error) {
	store := &Store{
		path:   path,
		Tokens: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, store); err != nil {
		return nil, err
	}
	if store.Tokens == nil {
		store.Tokens = make(map[string]string)
	}
	return store, nil
}

// Save writes tokens to disk. Credentials get a tighter file mode than
// the other stores.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Get returns the token stored under key, or "".
func (s *Store) Get(key string) string {
	return s.Tokens[key]
}

// Set stores a token under key.
func (s *Store) Set(key, value string) {
	s.Tokens[key] = value
}

// Clear removes the token stored under key.
func (s *Store) Clear(key string) bool {
	if _, ok := s.Tokens[key]; !ok {
		return false
	}
	delete(s.Tokens, key)
	return true
}
