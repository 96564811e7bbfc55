// Package taxonomy owns the set of valid categories and their nested
// sub-categories. Names are the only identity: everything is stored under
// its lowercase form, which keeps imports idempotent and the whole structure
// serializable as a plain nested document.
package taxonomy

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrUnknownCategory is returned when a sub-category edit names a
	// category that does not exist.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrDuplicateSubcategory is returned when a sub-category already
	// exists under its category.
	ErrDuplicateSubcategory = errors.New("duplicate subcategory")
)

// Normalize returns the canonical form of a category or sub-category name.
// Uniqueness is case-insensitive, so all names are kept lowercase.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Category is a snapshot of one taxonomy entry. Snapshots are values handed
// out by the store; mutating one does not touch the store.
type Category struct {
	Name          string        `json:"name"`
	AddedOn       time.Time     `json:"added_on"`
	Subcategories []SubCategory `json:"subcategories,omitempty"`
}

// SubCategory is a named entry scoped to its owning category.
type SubCategory struct {
	Name    string    `json:"name"`
	AddedOn time.Time `json:"added_on"`
}
