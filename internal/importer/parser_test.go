package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwhitten/nestegg/internal/importer"
	"github.com/rwhitten/nestegg/internal/ledger"
)

func TestCSVParser_SignedLayout(t *testing.T) {
	input := strings.Join([]string{
		"Statement Export",
		"",
		"Date,Description,Category,Amount",
		"2024-06-03,Paycheck,Income,\"2,950.00\"",
		"2024-06-05,Grocery Store,Food,-182.44",
		"2024-06-09,Refund,Shopping,45.10",
		",Total,,2812.66",
	}, "\n")

	result, err := importer.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Entries, 3)
	assert.Empty(t, result.Skipped)

	paycheck := result.Entries[0]
	assert.Equal(t, ledger.KindDeposit, paycheck.Kind)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), paycheck.Date)
	assert.True(t, paycheck.Amount.Equal(decimal.NewFromFloat(2950)), "got %s", paycheck.Amount)
	assert.Equal(t, "Income", paycheck.Category)

	groceries := result.Entries[1]
	assert.Equal(t, ledger.KindWithdrawal, groceries.Kind)
	assert.True(t, groceries.Amount.Equal(decimal.NewFromFloat(182.44)), "got %s", groceries.Amount)
	assert.Equal(t, "Grocery Store", groceries.Description)
}

func TestCSVParser_SplitLayout(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Debit,Credit",
		"01/08/2024,Rent,1450.00,",
		"01/15/2024,Paycheck,,2950.00",
	}, "\n")

	result, err := importer.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	assert.Equal(t, ledger.KindWithdrawal, result.Entries[0].Kind)
	assert.True(t, result.Entries[0].Amount.Equal(decimal.NewFromFloat(1450)))
	assert.Equal(t, ledger.KindDeposit, result.Entries[1].Kind)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), result.Entries[1].Date)
}

func TestCSVParser_BadRowsSkippedWithContext(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2024-06-03,Coffee,-4.50",
		"junk-date,Mystery,-10.00",
		"2024-06-04,,12.00",
		"2024-06-05,Lunch,not-a-number",
		"2024-06-06,Book,-18.99",
	}, "\n")

	result, err := importer.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	// The good rows survive the bad ones.
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Coffee", result.Entries[0].Description)
	assert.Equal(t, "Book", result.Entries[1].Description)

	require.Len(t, result.Skipped, 3)
	assert.Equal(t, 3, result.Skipped[0].Row)
	assert.Equal(t, "date", result.Skipped[0].Field)
	assert.Equal(t, 4, result.Skipped[1].Row)
	assert.Equal(t, "description", result.Skipped[1].Field)
	assert.Equal(t, 5, result.Skipped[2].Row)
	assert.Equal(t, "amount", result.Skipped[2].Field)
}

func TestCSVParser_AccountingNegatives(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2024-06-03,Utilities,($75.00)",
	}, "\n")

	result, err := importer.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)

	assert.Equal(t, ledger.KindWithdrawal, result.Entries[0].Kind)
	assert.True(t, result.Entries[0].Amount.Equal(decimal.NewFromFloat(75)))
}

func TestCSVParser_ZeroAmountsDropped(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2024-06-03,Pending Hold,0.00",
		"2024-06-04,Coffee,-4.50",
	}, "\n")

	result, err := importer.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Coffee", result.Entries[0].Description)
	assert.Empty(t, result.Skipped)
}

func TestCSVParser_NoRecognizableHeader(t *testing.T) {
	input := "foo,bar\n1,2\n"

	_, err := importer.NewCSVParser().Parse(strings.NewReader(input))
	assert.ErrorContains(t, err, "no matching statement layout")
}
