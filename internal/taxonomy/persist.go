package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
)

// taxonomyFile is the on-disk shape: categories only, never transactions.
type taxonomyFile struct {
	Categories []Category `json:"categories"`
}

// Save writes the categories and sub-categories to path as indented JSON.
// The write goes through a temp file and a rename so a crash cannot leave a
// half-written taxonomy behind.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(taxonomyFile{Categories: s.Categories()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode taxonomy: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Load reads a taxonomy file written by Save and rebuilds the store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var file taxonomyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	store := NewStore()
	for _, cat := range file.Categories {
		store.AddCategory(cat.Name, cat.AddedOn)
		for _, sub := range cat.Subcategories {
			if err := store.AddSubcategory(cat.Name, sub.Name, sub.AddedOn); err != nil {
				return nil, fmt.Errorf("parse %s: category %q: %w", path, cat.Name, err)
			}
		}
	}
	return store, nil
}
