package retirement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rwhitten/nestegg/internal/account"
	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/projection"
	"github.com/rwhitten/nestegg/internal/retirement"
	"github.com/rwhitten/nestegg/internal/user"
)

func TestService_Outlook_FutureRetirementUsesProjection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balances := retirement.NewMockBalanceSource(ctrl)
	projector := retirement.NewMockProjector(ctrl)
	svc := retirement.NewService(balances, projector)

	// Born 1990, retiring at 65: well in the future.
	u := &user.User{
		DateOfBirth:      time.Date(1990, time.April, 10, 0, 0, 0, 0, time.UTC),
		RetirementAge:    65,
		ExpectedDeathAge: 85,
	}
	a := &account.Account{
		Kind:                account.KindRetirement,
		MonthlyInterestPct:  0.3,
		YearlyWithdrawalPct: 4,
	}

	retireMonth := dateutil.MonthOf(u.RetirementDate())
	win := dateutil.Window{Years: 1}

	projector.EXPECT().
		EstimateBalance(gomock.Any(), a, retireMonth, win, projection.KindLinear).
		Return(decimal.NewFromInt(750000), nil)

	points, err := svc.Outlook(context.Background(), u, a, win, projection.KindLinear)
	require.NoError(t, err)

	require.Len(t, points, 12*20+1)
	assert.True(t, points[0].Balance.Equal(decimal.NewFromInt(750000)))
	assert.Equal(t, u.RetirementDate(), points[0].Date)
}

func TestService_Outlook_PastRetirementReadsLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balances := retirement.NewMockBalanceSource(ctrl)
	projector := retirement.NewMockProjector(ctrl)
	svc := retirement.NewService(balances, projector)

	// Born 1950, retired at 65: retirement date is behind us, so the
	// anchor balance comes from the ledger, not the trend curve.
	u := &user.User{
		DateOfBirth:      time.Date(1950, time.April, 10, 0, 0, 0, 0, time.UTC),
		RetirementAge:    65,
		ExpectedDeathAge: 85,
	}
	a := &account.Account{Kind: account.KindRetirement, MonthlyInterestPct: 0.3, YearlyWithdrawalPct: 4}

	balances.EXPECT().
		BalanceAsOf(gomock.Any(), a, u.RetirementDate()).
		Return(decimal.NewFromInt(400000), nil)

	points, err := svc.Outlook(context.Background(), u, a, dateutil.Window{}, projection.KindLinear)
	require.NoError(t, err)

	require.NotEmpty(t, points)
	assert.True(t, points[0].Balance.Equal(decimal.NewFromInt(400000)))
}

func TestService_Outlook_FallsBackToUserRatesAndDefaultDeathAge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	balances := retirement.NewMockBalanceSource(ctrl)
	projector := retirement.NewMockProjector(ctrl)
	svc := retirement.NewService(balances, projector)

	u := &user.User{
		DateOfBirth:         time.Date(1950, time.April, 10, 0, 0, 0, 0, time.UTC),
		RetirementAge:       65,
		YearlyWithdrawalPct: 6,
		// ExpectedDeathAge unset: defaults to 85.
	}
	a := &account.Account{Kind: account.KindRetirement, MonthlyInterestPct: 0.1}

	balances.EXPECT().
		BalanceAsOf(gomock.Any(), a, u.RetirementDate()).
		Return(decimal.NewFromInt(100000), nil)

	points, err := svc.Outlook(context.Background(), u, a, dateutil.Window{}, projection.KindLinear)
	require.NoError(t, err)

	require.Len(t, points, 12*20+1)
	// The user's 6% rate applies: first tick withdraws 0.5% then grows
	// the rest by 0.1%.
	want := decimal.NewFromFloat(99599.50)
	assert.True(t, points[1].Balance.Equal(want), "got %s", points[1].Balance)
}
