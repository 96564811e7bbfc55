package service

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ericbergkvist/expenses-tracking/internal/ledger"
	"github.com/ericbergkvist/expenses-tracking/internal/taxonomy"
)

// ExpenseTracker owns the taxonomy store and the accepted transactions. One
// tracker instance is the only writer of both; there is no locking because
// there is no concurrency.
type ExpenseTracker struct {
	store        *taxonomy.Store
	transactions []ledger.Transaction
	log          zerolog.Logger
}

func NewExpenseTracker(store *taxonomy.Store, log zerolog.Logger) *ExpenseTracker {
	if store == nil {
		store = taxonomy.NewStore()
	}
	return &ExpenseTracker{store: store, log: log}
}

// RowError records why a single row was rejected.
type RowError struct {
	Line int
	Err  error
}

// BatchResult summarizes one CSV import.
type BatchResult struct {
	Accepted int
	Rejected int
	Rows     []RowError
}

// LoadTransactions imports a CSV stream (header plus 7-column rows). Errors
// from the CSV reader itself abort the load; parse failures and taxonomy
// rejections are row-scoped, counted and skipped. With autoCreate set, each
// row's own category and sub-category are added to the store (dated with the
// row's date) before the row is resolved, so a self-consistent row always
// passes.
//
// Rows are processed in file order: with autoCreate, later rows depend on
// taxonomy state built from earlier ones.
func (t *ExpenseTracker) LoadTransactions(r io.Reader, autoCreate bool) (BatchResult, error) {
	var res BatchResult

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.FieldsPerRecord = -1

	if _, err := csvr.Read(); err != nil {
		if err == io.EOF {
			return res, nil
		}
		return res, fmt.Errorf("read csv header: %w", err)
	}

	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read csv row %d: %w", line, err)
		}

		parsed, err := ledger.ParseRow(rec)
		if err != nil {
			t.reject(&res, line, err)
			continue
		}

		if autoCreate {
			t.store.AddCategory(parsed.Category, parsed.Date)
			if parsed.Subcategory != "" {
				if err := t.store.AddSubcategory(parsed.Category, parsed.Subcategory, parsed.Date); err != nil &&
					!errors.Is(err, taxonomy.ErrDuplicateSubcategory) {
					t.log.Debug().Err(err).Int("line", line).Msg("auto-create subcategory")
				}
			}
		}

		tx, err := Resolve(parsed, t.store)
		if err != nil {
			t.reject(&res, line, err)
			continue
		}
		t.transactions = append(t.transactions, tx)
		res.Accepted++
	}

	t.log.Info().
		Int("accepted", res.Accepted).
		Int("rejected", res.Rejected).
		Msg("transactions loaded")
	return res, nil
}

func (t *ExpenseTracker) reject(res *BatchResult, line int, err error) {
	res.Rejected++
	res.Rows = append(res.Rows, RowError{Line: line, Err: err})
	t.log.Debug().Err(err).Int("line", line).Msg("row rejected")
}

// WriteTransactions serializes the retained transactions back to the
// 7-column format, header included.
func (t *ExpenseTracker) WriteTransactions(w io.Writer) error {
	csvw := csv.NewWriter(w)
	if err := csvw.Write(ledger.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range t.transactions {
		if err := csvw.Write(t.transactions[i].Record()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	csvw.Flush()
	if err := csvw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// SaveTaxonomy persists the category structure (never the transactions).
func (t *ExpenseTracker) SaveTaxonomy(path string) error {
	return t.store.Save(path)
}

// Store exposes the taxonomy for explicit edits.
func (t *ExpenseTracker) Store() *taxonomy.Store {
	return t.store
}

// Transactions returns the accepted transactions in load order.
func (t *ExpenseTracker) Transactions() []ledger.Transaction {
	return t.transactions
}

// Sum returns the signed total over all retained transactions.
func (t *ExpenseTracker) Sum() float64 {
	var sum float64
	for i := range t.transactions {
		sum += t.transactions[i].Amount
	}
	return sum
}
