package taxonomy

import (
	"fmt"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
)

// seedFile is the TOML layout used to bootstrap a taxonomy before the first
// import. Each [category.<key>] table declares one category; the key is used
// as the name when no explicit name is given.
type seedFile struct {
	Version  int                     `toml:"version"`
	Category map[string]seedCategory `toml:"category"`
}

type seedCategory struct {
	Name          string   `toml:"name"`
	Subcategories []string `toml:"subcategories"`
}

// LoadSeed builds a store from a TOML seed file. All entries are dated with
// the load time.
func LoadSeed(path string) (*Store, error) {
	var seed seedFile
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	keys := make([]string, 0, len(seed.Category))
	for key := range seed.Category {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := time.Now()
	store := NewStore()
	for _, key := range keys {
		item := seed.Category[key]
		name := item.Name
		if Normalize(name) == "" {
			name = key
		}
		store.AddCategory(name, now)
		for _, sub := range item.Subcategories {
			if err := store.AddSubcategory(name, sub, now); err != nil {
				return nil, fmt.Errorf("parse %s: category %q: %w", path, name, err)
			}
		}
	}
	return store, nil
}
