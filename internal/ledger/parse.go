package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingField marks a row that lacks one of the required columns.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidDate marks a date column that does not match DateLayout.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidAmount marks an amount column that is not a number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Column positions in the bank export.
const (
	colDate = iota
	colAmountOut
	colAmountIn
	colCategory
	colSubcategory
	colTag
	colNote
)

var requiredColumns = [...]string{
	colDate:      "date",
	colAmountOut: "amount_out",
	colAmountIn:  "amount_in",
	colCategory:  "category",
}

// ParseAmount converts a formatted amount string into a float. An empty or
// whitespace-only amount means "no value" and yields zero. The apostrophe
// thousands separator used in CHF exports is stripped before parsing.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, "'", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// ParseRow converts one CSV record into a ParsedTransaction. The final
// amount is amount_in minus amount_out, so outgoing money is negative.
func ParseRow(fields []string) (ParsedTransaction, error) {
	for col, name := range requiredColumns {
		if len(fields) <= col {
			return ParsedTransaction{}, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(fields[colDate]))
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("%w: %q", ErrInvalidDate, fields[colDate])
	}
	amountOut, err := ParseAmount(fields[colAmountOut])
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("amount_out: %w", err)
	}
	amountIn, err := ParseAmount(fields[colAmountIn])
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("amount_in: %w", err)
	}

	return ParsedTransaction{
		Date:        date,
		Amount:      amountIn - amountOut,
		Category:    fields[colCategory],
		Subcategory: optionalField(fields, colSubcategory),
		Tag:         optionalField(fields, colTag),
		Note:        optionalField(fields, colNote),
	}, nil
}

func optionalField(fields []string, col int) string {
	if len(fields) <= col {
		return ""
	}
	return fields[col]
}
