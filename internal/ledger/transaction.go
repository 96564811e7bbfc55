package ledger

import (
	"fmt"
	"time"
)

// DateLayout is the day.month.year convention of the bank export this tool
// consumes and produces.
const DateLayout = "02.01.2006"

// Header is the column layout shared by input and output CSV files.
var Header = []string{"date", "amount_out", "amount_in", "category", "subcategory", "tag", "note"}

// ParsedTransaction is a single row lifted out of the CSV. The category and
// sub-category are carried exactly as they appeared in the file; the row has
// no taxonomy knowledge and cannot be validated on its own.
//
// Optional fields use the empty string for "not set": a column that was
// present but empty is indistinguishable from an absent one.
type ParsedTransaction struct {
	Date        time.Time
	Amount      float64
	Category    string
	Subcategory string
	Tag         string
	Note        string
}

// Transaction is a parsed row whose category (and sub-category, if any) was
// confirmed against the taxonomy when it was accepted. Values are never
// mutated afterwards; an edit replaces the whole transaction.
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      float64
	Category    string
	Subcategory string
	Tag         string
	Note        string

	// Normalized names under which the taxonomy accepted the row.
	CategoryKey    string
	SubcategoryKey string
}

// Record renders the transaction back into the 7-column layout. The signed
// amount is split into out/in so that exactly one of the pair is non-empty,
// formatted to two decimals.
func (t Transaction) Record() []string {
	amountOut, amountIn := "", ""
	if t.Amount < 0 {
		amountOut = fmt.Sprintf("%.2f", -t.Amount)
	} else {
		amountIn = fmt.Sprintf("%.2f", t.Amount)
	}
	return []string{
		t.Date.Format(DateLayout),
		amountOut,
		amountIn,
		t.Category,
		t.Subcategory,
		t.Tag,
		t.Note,
	}
}
