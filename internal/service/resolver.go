// Package service contains the expense tracking facade: batch loading of
// CSV rows, resolution of parsed rows against the taxonomy, and persistence
// plumbing around both.
package service

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/ericbergkvist/expenses-tracking/internal/ledger"
	"github.com/ericbergkvist/expenses-tracking/internal/taxonomy"
)

// Reason classifies why a parsed row was refused by the taxonomy.
type Reason int

const (
	// InvalidCategory: the row names a category the store does not have.
	InvalidCategory Reason = iota + 1
	// UnexpectedSubcategory: a sub-category is set although the category
	// has none.
	UnexpectedSubcategory
	// MissingOrInvalidSubcategory: the category requires a sub-category
	// and the row names none, or one that is not in the category's set.
	MissingOrInvalidSubcategory
)

func (r Reason) String() string {
	switch r {
	case InvalidCategory:
		return "invalid category"
	case UnexpectedSubcategory:
		return "unexpected subcategory"
	case MissingOrInvalidSubcategory:
		return "missing or invalid subcategory"
	default:
		return "unknown"
	}
}

// RejectionError is a row-scoped soft failure: during batch loading it is
// counted and logged, never fatal.
type RejectionError struct {
	Reason      Reason
	Category    string
	Subcategory string
	Suggestion  string
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case InvalidCategory:
		if e.Suggestion != "" {
			return fmt.Sprintf("invalid category %q (closest match: %q)", e.Category, e.Suggestion)
		}
		return fmt.Sprintf("invalid category %q", e.Category)
	case UnexpectedSubcategory:
		return fmt.Sprintf("subcategory %q set although category %q has none", e.Subcategory, e.Category)
	case MissingOrInvalidSubcategory:
		if e.Subcategory == "" {
			return fmt.Sprintf("no subcategory set although category %q has some", e.Category)
		}
		return fmt.Sprintf("subcategory %q does not exist in category %q", e.Subcategory, e.Category)
	default:
		return "rejected"
	}
}

// maxSuggestionRatio bounds how different a category name may be from its
// closest match before the suggestion is dropped as noise.
const maxSuggestionRatio = 0.4

// Resolve checks a parsed row against the store and produces a resolved
// Transaction or a RejectionError. The rule is three-way: a category without
// sub-categories accepts only rows naming none, a category with
// sub-categories accepts only rows naming one of them.
func Resolve(parsed ledger.ParsedTransaction, store *taxonomy.Store) (ledger.Transaction, error) {
	cat, ok := store.Category(parsed.Category)
	if !ok {
		return ledger.Transaction{}, &RejectionError{
			Reason:     InvalidCategory,
			Category:   parsed.Category,
			Suggestion: closestCategory(parsed.Category, store),
		}
	}

	if len(cat.Subcategories) == 0 {
		if parsed.Subcategory != "" {
			return ledger.Transaction{}, &RejectionError{
				Reason:      UnexpectedSubcategory,
				Category:    parsed.Category,
				Subcategory: parsed.Subcategory,
			}
		}
		return newTransaction(parsed, cat.Name, ""), nil
	}

	if parsed.Subcategory == "" {
		return ledger.Transaction{}, &RejectionError{
			Reason:   MissingOrInvalidSubcategory,
			Category: parsed.Category,
		}
	}
	sub, ok := store.Subcategory(parsed.Category, parsed.Subcategory)
	if !ok {
		return ledger.Transaction{}, &RejectionError{
			Reason:      MissingOrInvalidSubcategory,
			Category:    parsed.Category,
			Subcategory: parsed.Subcategory,
		}
	}
	return newTransaction(parsed, cat.Name, sub.Name), nil
}

func newTransaction(parsed ledger.ParsedTransaction, categoryKey, subKey string) ledger.Transaction {
	return ledger.Transaction{
		ID:             uuid.NewString(),
		Date:           parsed.Date,
		Amount:         parsed.Amount,
		Category:       parsed.Category,
		Subcategory:    parsed.Subcategory,
		Tag:            parsed.Tag,
		Note:           parsed.Note,
		CategoryKey:    categoryKey,
		SubcategoryKey: subKey,
	}
}

// closestCategory returns the known category nearest to name, or "" when
// nothing is close enough to be a plausible typo.
func closestCategory(name string, store *taxonomy.Store) string {
	needle := taxonomy.Normalize(name)
	if needle == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, cat := range store.Categories() {
		dist := levenshtein.ComputeDistance(needle, cat.Name)
		if bestDist == -1 || dist < bestDist {
			best, bestDist = cat.Name, dist
		}
	}
	if best == "" {
		return ""
	}
	maxLen := len(needle)
	if len(best) > maxLen {
		maxLen = len(best)
	}
	if float64(bestDist)/float64(maxLen) >= maxSuggestionRatio {
		return ""
	}
	return best
}
