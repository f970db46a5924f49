package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rwhitten/nestegg/internal/account"
	"github.com/rwhitten/nestegg/internal/dateutil"
)

type entryRec struct {
	date   time.Time
	amount decimal.Decimal
}

// fakeLedger sums in-memory entries with the same window semantics as
// the SQL store: from inclusive, to exclusive, nil bounds open.
type fakeLedger struct {
	deposits    []entryRec
	withdrawals []entryRec
}

func sumWindow(recs []entryRec, from, to *time.Time) decimal.Decimal {
	sum := decimal.Zero

	for _, r := range recs {
		if from != nil && r.date.Before(*from) {
			continue
		}

		if to != nil && !r.date.Before(*to) {
			continue
		}

		sum = sum.Add(r.amount)
	}

	return sum
}

func (f *fakeLedger) SumDeposits(_ context.Context, _ uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	return sumWindow(f.deposits, from, to), nil
}

func (f *fakeLedger) SumWithdrawals(_ context.Context, _ uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	return sumWindow(f.withdrawals, from, to), nil
}

func (f *fakeLedger) EntryDateRange(_ context.Context, _ uuid.UUID) (*time.Time, *time.Time, error) {
	var earliest, latest *time.Time

	for _, recs := range [][]entryRec{f.deposits, f.withdrawals} {
		for i := range recs {
			d := recs[i].date
			if earliest == nil || d.Before(*earliest) {
				earliest = &d
			}

			if latest == nil || d.After(*latest) {
				latest = &d
			}
		}
	}

	return earliest, latest, nil
}

func newService(ledger account.Ledger) *account.Service {
	return account.NewService(nil, ledger)
}

func d(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestBalanceAsOf_EmptyAccountReturnsStartingBalance(t *testing.T) {
	svc := newService(&fakeLedger{})

	a := &account.Account{ID: uuid.New(), Kind: account.KindChecking, StartingBalance: decimal.NewFromFloat(123.45)}

	for _, cutoff := range []time.Time{d(1), d(15), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)} {
		got, err := svc.BalanceAsOf(context.Background(), a, cutoff)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(123.45)), "cutoff %s: got %s", cutoff, got)
	}
}

func TestBalanceAsOf_Additivity(t *testing.T) {
	svc := newService(&fakeLedger{
		deposits: []entryRec{
			{d(1), decimal.NewFromFloat(100)},
			{d(10), decimal.NewFromFloat(200)},
		},
		withdrawals: []entryRec{
			{d(5), decimal.NewFromFloat(30)},
			{d(20), decimal.NewFromFloat(70)},
		},
	})

	a := &account.Account{ID: uuid.New(), Kind: account.KindChecking, StartingBalance: decimal.NewFromFloat(50)}

	type testCase struct {
		name   string
		cutoff time.Time
		want   float64
	}

	tests := []testCase{
		{"BeforeAllEntries", d(1), 50},
		{"MidMonth", d(6), 120},         // 50 + 100 - 30
		{"EntryOnCutoffExcluded", d(10), 120},
		{"AfterAllEntries", d(30), 250}, // 50 + 300 - 100
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.BalanceAsOf(context.Background(), a, tt.cutoff)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)), "got %s", got)
		})
	}
}

func TestBalanceAsOf_DebtFloor(t *testing.T) {
	// Payments exceed the original debt; balance floors at zero.
	svc := newService(&fakeLedger{
		withdrawals: []entryRec{{d(1), decimal.NewFromFloat(1000)}}, // disbursement
		deposits:    []entryRec{{d(10), decimal.NewFromFloat(1500)}},
	})

	a := &account.Account{ID: uuid.New(), Kind: account.KindDebt}

	got, err := svc.BalanceAsOf(context.Background(), a, d(30))
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestBalance_ConcreteScenario(t *testing.T) {
	// Two deposits of $50 and $75 and one withdrawal of $100 in June.
	svc := newService(&fakeLedger{
		deposits: []entryRec{
			{d(3), decimal.NewFromFloat(50)},
			{d(12), decimal.NewFromFloat(75)},
		},
		withdrawals: []entryRec{{d(20), decimal.NewFromFloat(100)}},
	})

	a := &account.Account{ID: uuid.New(), Kind: account.KindChecking}

	june := dateutil.Month{Year: 2024, Month: time.June}
	july := june.Next()

	allTime, err := svc.BalanceAsOf(context.Background(), a, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, allTime.Equal(decimal.NewFromFloat(25)), "got %s", allTime)

	forJune, err := svc.BalanceForMonth(context.Background(), a, june)
	require.NoError(t, err)
	assert.True(t, forJune.Equal(decimal.NewFromFloat(25)), "got %s", forJune)

	forJuly, err := svc.BalanceForMonth(context.Background(), a, july)
	require.NoError(t, err)
	assert.True(t, forJuly.IsZero(), "got %s", forJuly)
}

func TestBalance_MonthlyVsCumulative(t *testing.T) {
	// Entries only in the first of two consecutive months: the
	// cumulative figure carries forward while the monthly delta drops
	// to zero.
	svc := newService(&fakeLedger{
		deposits: []entryRec{{d(2), decimal.NewFromFloat(400)}},
	})

	a := &account.Account{ID: uuid.New(), Kind: account.KindChecking, StartingBalance: decimal.NewFromFloat(100)}

	june := dateutil.Month{Year: 2024, Month: time.June}
	july := june.Next()

	inclJune, err := svc.BalanceIncluding(context.Background(), a, june)
	require.NoError(t, err)

	inclJuly, err := svc.BalanceIncluding(context.Background(), a, july)
	require.NoError(t, err)
	assert.True(t, inclJune.Equal(inclJuly), "including: june %s, july %s", inclJune, inclJuly)
	assert.True(t, inclJune.Equal(decimal.NewFromFloat(500)))

	forJuly, err := svc.BalanceForMonth(context.Background(), a, july)
	require.NoError(t, err)
	assert.True(t, forJuly.IsZero())
}

func TestEntryDates_EmptyAccount(t *testing.T) {
	svc := newService(&fakeLedger{})

	a := &account.Account{ID: uuid.New(), Kind: account.KindTrading}

	latest, err := svc.LatestEntryDate(context.Background(), a)
	require.NoError(t, err)
	assert.Nil(t, latest)

	earliest, err := svc.EarliestEntryDate(context.Background(), a)
	require.NoError(t, err)
	assert.Nil(t, earliest)
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *account.Account) error {
			a.ID = uuid.New()
			a.CreatedAt = time.Now()
			return nil
		})

	svc := account.NewService(repo, account.NewMockLedger(ctrl))

	got, err := svc.Create(context.Background(), account.CreateParams{
		UserID:              uuid.New(),
		Name:                "Vanguard 401k",
		Kind:                account.KindRetirement,
		StartingBalance:     decimal.NewFromFloat(10000),
		OpenedOn:            d(1),
		MonthlyInterestPct:  0.6,
		YearlyWithdrawalPct: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, account.KindRetirement, got.Kind)
}
