// Package favorites provides persistent storage of favourited cards.
package favorites

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"botbrowser/card"
)

// Favorite represents a saved card reference.
type Favorite struct {
	Key     string    `json:"key"` // normalized name|creator
	Name    string    `json:"name"`
	Creator string    `json:"creator"`
	Service string    `json:"service,omitempty"`
	CardURL string    `json:"card_url,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Store manages the favorites collection.
type Store struct {
	path      string
	Favorites []Favorite `json:"favorites"`
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "botbrowser"), nil
}

// Load reads favorites from disk, returning an empty store if the file
// doesn't exist yet.
func Load() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "favorites.json"))
}

// LoadFrom loads favorites from a specific file path.
func LoadFrom(path string) (*Store, error) {
	store := &Store{path: path}

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
	return store, nil
}

// Save writes favorites to disk.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Add favourites a card, avoiding duplicates by key.
func (s *Store) Add(c card.Card) bool {
	key := c.Key()
	for _, f := range s.Favorites {
		if f.Key == key {
			return false
		}
	}

	s.Favorites = append(s.Favorites, Favorite{
		Key:     key,
		Name:    c.Name,
		Creator: c.Creator,
		Service: c.Service,
		CardURL: c.CardURL,
		AddedAt: time.Now(),
	})
	return true
}

// Remove deletes a favorite by key.
func (s *Store) Remove(key string) bool {
	for i, f := range s.Favorites {
		if f.Key == key {
			s.Favorites = append(s.Favorites[:i], s.Favorites[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether a card is favourited.
func (s *Store) Has(c card.Card) bool {
	key := c.Key()
	for _, f := range s.Favorites {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	return len(s.Favorites)
}
