package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rwhitten/nestegg/internal/budget"
	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/ledger"
)

var june = dateutil.Month{Year: 2024, Month: time.June}

func TestService_GetOrCreate(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *budget.MockRepository, userID uuid.UUID)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "ExistingBudget",
			setupMock: func(m *budget.MockRepository, userID uuid.UUID) {
				m.EXPECT().
					GetMonthlyBudget(gomock.Any(), userID, time.June, 2024).
					Return(&budget.MonthlyBudget{UserID: userID, Month: time.June, Year: 2024}, nil)
			},
		},
		{
			name: "MissLazilyCreatesZeroedRow",
			setupMock: func(m *budget.MockRepository, userID uuid.UUID) {
				m.EXPECT().
					GetMonthlyBudget(gomock.Any(), userID, time.June, 2024).
					Return(nil, budget.ErrNotFound)
				m.EXPECT().
					CreateMonthlyBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mb *budget.MonthlyBudget) error {
						require.True(t, mb.Mandatory.IsZero())
						require.True(t, mb.Discretionary.IsZero())
						mb.ID = uuid.New()
						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			userID := uuid.New()

			if tt.setupMock != nil {
				tt.setupMock(repo, userID)
			}

			svc := budget.NewService(repo)
			got, err := svc.GetOrCreate(context.Background(), userID, june)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, time.June, got.Month)
			assert.Equal(t, 2024, got.Year)
		})
	}
}

func TestService_ExpensesByGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo)

	userID := uuid.New()

	repo.EXPECT().
		SumWithdrawalsByGroup(gomock.Any(), userID, june.Start(), june.End()).
		Return(map[ledger.BudgetGroup]decimal.Decimal{
			ledger.GroupMandatory: decimal.NewFromFloat(800),
			ledger.GroupMortgage:  decimal.NewFromFloat(1450),
		}, nil)
	repo.EXPECT().
		SumStatutory(gomock.Any(), userID, june.Start(), june.End()).
		Return(decimal.NewFromFloat(920.33), nil)

	got, err := svc.ExpensesForMonth(context.Background(), userID, june)
	require.NoError(t, err)

	assert.True(t, got.Mandatory.Equal(decimal.NewFromFloat(800)))
	assert.True(t, got.Mortgage.Equal(decimal.NewFromFloat(1450)))
	// Groups with no withdrawals report zero, not a missing key.
	assert.True(t, got.DebtsGoalsRetirement.IsZero())
	assert.True(t, got.Discretionary.IsZero())
	assert.True(t, got.Statutory.Equal(decimal.NewFromFloat(920.33)))
}

func TestService_Estimate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo)

	userID := uuid.New()

	repo.EXPECT().
		SumCheckingDeposits(gomock.Any(), userID, june.Start(), june.End()).
		Return(decimal.NewFromFloat(6000), nil)
	repo.EXPECT().
		SumStatutory(gomock.Any(), userID, june.Start(), june.End()).
		Return(decimal.NewFromFloat(1000), nil).
		Times(2) // once for takehome, once for the statutory actual

	got, err := svc.Estimate(context.Background(), userID, june, budget.DefaultSplit)
	require.NoError(t, err)

	// Takehome is 5000; the 16/29/25/30 split applies to it.
	assert.True(t, got.Mandatory.Equal(decimal.NewFromFloat(800)), "got %s", got.Mandatory)
	assert.True(t, got.Mortgage.Equal(decimal.NewFromFloat(1450)), "got %s", got.Mortgage)
	assert.True(t, got.DebtsGoalsRetirement.Equal(decimal.NewFromFloat(1250)), "got %s", got.DebtsGoalsRetirement)
	assert.True(t, got.Discretionary.Equal(decimal.NewFromFloat(1500)), "got %s", got.Discretionary)
	assert.True(t, got.Statutory.Equal(decimal.NewFromFloat(1000)))
}

func TestService_Estimate_CustomSplit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo)

	userID := uuid.New()

	repo.EXPECT().
		SumCheckingDeposits(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		Return(decimal.NewFromFloat(4000), nil)
	repo.EXPECT().
		SumStatutory(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		Return(decimal.Zero, nil).
		Times(2)

	split := budget.Split{MandatoryPct: 50, MortgagePct: 0, DGRPct: 25, DiscretionaryPct: 25}

	got, err := svc.Estimate(context.Background(), userID, june, split)
	require.NoError(t, err)
	assert.True(t, got.Mandatory.Equal(decimal.NewFromFloat(2000)))
	assert.True(t, got.Mortgage.IsZero())
}

func TestService_Leftover_SurfacesOverspend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo)

	userID := uuid.New()

	repo.EXPECT().
		GetMonthlyBudget(gomock.Any(), userID, time.June, 2024).
		Return(&budget.MonthlyBudget{
			UserID:               userID,
			Month:                time.June,
			Year:                 2024,
			Mandatory:            decimal.NewFromFloat(500),
			Mortgage:             decimal.NewFromFloat(1400),
			DebtsGoalsRetirement: decimal.NewFromFloat(1000),
			Discretionary:        decimal.NewFromFloat(600),
		}, nil)
	repo.EXPECT().
		SumWithdrawalsByGroup(gomock.Any(), userID, june.Start(), june.End()).
		Return(map[ledger.BudgetGroup]decimal.Decimal{
			ledger.GroupMandatory:     decimal.NewFromFloat(450),
			ledger.GroupDiscretionary: decimal.NewFromFloat(750),
		}, nil)
	repo.EXPECT().
		SumStatutory(gomock.Any(), userID, june.Start(), june.End()).
		Return(decimal.NewFromFloat(900), nil)

	got, err := svc.Leftover(context.Background(), userID, june)
	require.NoError(t, err)

	assert.True(t, got.Mandatory.Equal(decimal.NewFromFloat(50)))
	// Overspend comes back negative, not clamped to zero.
	assert.True(t, got.Discretionary.Equal(decimal.NewFromFloat(-150)), "got %s", got.Discretionary)
	// Statutory is never planned, so its leftover is always zero.
	assert.True(t, got.Statutory.IsZero())
}

func TestService_TopN_DefaultsN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo)

	userID := uuid.New()

	repo.EXPECT().
		TopWithdrawals(gomock.Any(), userID, june.Start(), june.End(), budget.DimensionLocation, 5).
		Return([]budget.RankedSum{
			{Value: "Grocery Store", Sum: decimal.NewFromFloat(612.88)},
			{Value: "Gas Station", Sum: decimal.NewFromFloat(201.10)},
		}, nil)

	got, err := svc.TopN(context.Background(), userID, june.Start(), june.End(), budget.DimensionLocation, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Grocery Store", got[0].Value)
}
