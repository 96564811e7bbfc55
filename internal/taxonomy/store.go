package taxonomy

import (
	"fmt"
	"sort"
	"time"
)

// Store holds the valid categories keyed by normalized name. It is owned by
// a single tracker instance and is not safe for concurrent use.
type Store struct {
	categories map[string]*categoryEntry
}

type categoryEntry struct {
	addedOn time.Time
	subs    map[string]time.Time
}

func NewStore() *Store {
	return &Store{categories: make(map[string]*categoryEntry)}
}

// AddCategory inserts a category under its normalized name. Adding a name
// that already exists (in any casing) is a no-op and returns false. A zero
// addedOn means today.
func (s *Store) AddCategory(name string, addedOn time.Time) bool {
	key := Normalize(name)
	if _, ok := s.categories[key]; ok {
		return false
	}
	if addedOn.IsZero() {
		addedOn = time.Now()
	}
	s.categories[key] = &categoryEntry{
		addedOn: addedOn,
		subs:    make(map[string]time.Time),
	}
	return true
}

// AddSubcategory inserts a sub-category under an existing category. The
// category must exist and the sub-category name must be new within it.
func (s *Store) AddSubcategory(category, sub string, addedOn time.Time) error {
	key := Normalize(category)
	entry, ok := s.categories[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	subKey := Normalize(sub)
	if _, ok := entry.subs[subKey]; ok {
		return fmt.Errorf("%w: %q under %q", ErrDuplicateSubcategory, sub, key)
	}
	if addedOn.IsZero() {
		addedOn = time.Now()
	}
	entry.subs[subKey] = addedOn
	return nil
}

// Category looks up a category by name, case-insensitively, and returns a
// snapshot with its sub-categories ordered by name.
func (s *Store) Category(name string) (Category, bool) {
	key := Normalize(name)
	entry, ok := s.categories[key]
	if !ok {
		return Category{}, false
	}
	return s.snapshot(key, entry), true
}

// Subcategory looks up a sub-category within a category, case-insensitively.
func (s *Store) Subcategory(category, sub string) (SubCategory, bool) {
	entry, ok := s.categories[Normalize(category)]
	if !ok {
		return SubCategory{}, false
	}
	subKey := Normalize(sub)
	addedOn, ok := entry.subs[subKey]
	if !ok {
		return SubCategory{}, false
	}
	return SubCategory{Name: subKey, AddedOn: addedOn}, true
}

// Categories returns snapshots of every category, ordered by name so that
// iteration and serialization are deterministic.
func (s *Store) Categories() []Category {
	keys := make([]string, 0, len(s.categories))
	for key := range s.categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Category, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.snapshot(key, s.categories[key]))
	}
	return out
}

// Len reports the number of categories.
func (s *Store) Len() int {
	return len(s.categories)
}

func (s *Store) snapshot(key string, entry *categoryEntry) Category {
	subs := make([]SubCategory, 0, len(entry.subs))
	for name, addedOn := range entry.subs {
		subs = append(subs, SubCategory{Name: name, AddedOn: addedOn})
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
	if len(subs) == 0 {
		subs = nil
	}
	return Category{Name: key, AddedOn: entry.addedOn, Subcategories: subs}
}
