package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ericbergkvist/expenses-tracking/internal/ledger"
	"github.com/ericbergkvist/expenses-tracking/internal/taxonomy"
)

const sampleCSV = `date,amount_out,amount_in,category,subcategory,tag,note
15.01.2024,42.80,,Food,Groceries,weekly,
16.01.2024,,1250.00,Salary,,,January pay
18.01.2024,12.00,,Food,Restaurant,,lunch
`

func newTracker(store *taxonomy.Store) *ExpenseTracker {
	return NewExpenseTracker(store, zerolog.Nop())
}

func TestLoadTransactionsAutoCreate(t *testing.T) {
	t.Parallel()

	tracker := newTracker(nil)
	res, err := tracker.LoadTransactions(strings.NewReader(sampleCSV), true)
	require.NoError(t, err)
	require.Equal(t, 3, res.Accepted)
	require.Equal(t, 0, res.Rejected)
	require.Empty(t, res.Rows)

	txs := tracker.Transactions()
	require.Len(t, txs, 3)
	require.Equal(t, -42.8, txs[0].Amount)
	require.Equal(t, 1250.0, txs[1].Amount)
	require.InDelta(t, 1195.2, tracker.Sum(), 1e-9)

	// Auto-created taxonomy entries are dated with the row's own date.
	food, ok := tracker.Store().Category("food")
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), food.AddedOn)
	require.Len(t, food.Subcategories, 2)
}

func TestLoadTransactionsAgainstFixedTaxonomy(t *testing.T) {
	t.Parallel()

	store := taxonomy.NewStore()
	store.AddCategory("Food", time.Time{})
	require.NoError(t, store.AddSubcategory("Food", "Groceries", time.Time{}))

	tracker := newTracker(store)
	res, err := tracker.LoadTransactions(strings.NewReader(sampleCSV), false)
	require.NoError(t, err)

	// Salary is unknown and Restaurant is not declared under Food.
	require.Equal(t, 1, res.Accepted)
	require.Equal(t, 2, res.Rejected)
	require.Len(t, res.Rows, 2)
	require.Equal(t, 3, res.Rows[0].Line)
	require.Equal(t, 4, res.Rows[1].Line)

	var rej *RejectionError
	require.ErrorAs(t, res.Rows[0].Err, &rej)
	require.Equal(t, InvalidCategory, rej.Reason)
	require.ErrorAs(t, res.Rows[1].Err, &rej)
	require.Equal(t, MissingOrInvalidSubcategory, rej.Reason)
}

func TestLoadTransactionsBadRowIsSkipped(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(strings.Join(ledger.Header, ","))
	b.WriteString("\n")
	for i := 1; i <= 10; i++ {
		if i == 3 {
			b.WriteString("not-a-date,1.00,,Misc,,,\n")
			continue
		}
		fmt.Fprintf(&b, "%02d.01.2024,1.00,,Misc,,,\n", i)
	}

	tracker := newTracker(nil)
	res, err := tracker.LoadTransactions(strings.NewReader(b.String()), true)
	require.NoError(t, err)
	require.Equal(t, 9, res.Accepted)
	require.Equal(t, 1, res.Rejected)
	require.Len(t, res.Rows, 1)
	require.Equal(t, 4, res.Rows[0].Line)
	require.ErrorIs(t, res.Rows[0].Err, ledger.ErrInvalidDate)
}

func TestLoadTransactionsStructuralErrorAborts(t *testing.T) {
	t.Parallel()

	// Unterminated quote cannot be tokenized; the whole load fails.
	broken := "date,amount_out,amount_in,category,subcategory,tag,note\n" +
		"15.01.2024,42.80,,Food,\"Groceries,weekly,\n"
	tracker := newTracker(nil)
	_, err := tracker.LoadTransactions(strings.NewReader(broken), true)
	require.Error(t, err)
	require.ErrorContains(t, err, "read csv row")
}

func TestLoadTransactionsEmptyInput(t *testing.T) {
	t.Parallel()

	tracker := newTracker(nil)
	res, err := tracker.LoadTransactions(strings.NewReader(""), true)
	require.NoError(t, err)
	require.Zero(t, res.Accepted)
	require.Zero(t, res.Rejected)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tracker := newTracker(nil)
	res, err := tracker.LoadTransactions(strings.NewReader(sampleCSV), true)
	require.NoError(t, err)
	require.Equal(t, 3, res.Accepted)

	var out bytes.Buffer
	require.NoError(t, tracker.WriteTransactions(&out))
	require.Equal(t, sampleCSV, out.String())
}

func TestSaveTaxonomyThenReload(t *testing.T) {
	t.Parallel()

	tracker := newTracker(nil)
	_, err := tracker.LoadTransactions(strings.NewReader(sampleCSV), true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, tracker.SaveTaxonomy(path))

	store, err := taxonomy.Load(path)
	require.NoError(t, err)
	require.Equal(t, tracker.Store().Categories(), store.Categories())

	// A fresh tracker over the reloaded taxonomy accepts the same rows
	// without auto-creation.
	fresh := newTracker(store)
	res, err := fresh.LoadTransactions(strings.NewReader(sampleCSV), false)
	require.NoError(t, err)
	require.Equal(t, 3, res.Accepted)
	require.Zero(t, res.Rejected)
}
