package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rwhitten/nestegg/internal/ledger"
)

func TestService_RecordEntry(t *testing.T) {
	type args struct {
		params ledger.EntryParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *ledger.MockRepository)
		wantErr   bool
		wantSlug  string
	}

	accountID := uuid.New()
	date := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: ledger.EntryParams{
					AccountID:   accountID,
					Kind:        ledger.KindWithdrawal,
					Date:        date,
					Amount:      decimal.NewFromFloat(42.50),
					BudgetGroup: ledger.GroupDiscretionary,
					Category:    "Eating Out",
					Description: "Thai Kitchen & Bar",
					Location:    "Downtown",
				},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					UpsertEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *ledger.Entry) (bool, error) {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return false, nil
					})
			},
			wantErr:  false,
			wantSlug: "thai-kitchen-bar",
		},
		{
			name: "NegativeAmount",
			args: args{
				params: ledger.EntryParams{
					AccountID: accountID,
					Kind:      ledger.KindDeposit,
					Date:      date,
					Amount:    decimal.NewFromFloat(-5),
				},
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{
				params: ledger.EntryParams{
					AccountID: accountID,
					Kind:      ledger.KindDeposit,
					Date:      date,
					Amount:    decimal.NewFromFloat(10),
				},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					UpsertEntry(gomock.Any(), gomock.Any()).
					Return(false, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.RecordEntry(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.wantSlug, got.Slug)
		})
	}
}

func TestService_SaveTransfer_MirrorsBothLegs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	from := uuid.New()
	to := uuid.New()
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromFloat(500)

	repo.EXPECT().
		SaveTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *ledger.Transfer, wd, dep *ledger.Entry) error {
			require.Equal(t, ledger.KindWithdrawal, wd.Kind)
			require.Equal(t, from, wd.AccountID)
			require.Equal(t, ledger.KindDeposit, dep.Kind)
			require.Equal(t, to, dep.AccountID)

			// Both legs must share the transfer's natural key.
			for _, e := range []*ledger.Entry{wd, dep} {
				require.Equal(t, date, e.Date)
				require.True(t, amount.Equal(e.Amount))
				require.Equal(t, "401k Contribution", e.Description)
				require.Equal(t, ledger.GroupDGR, e.BudgetGroup)
			}

			tr.ID = uuid.New()

			return nil
		})

	got, err := svc.SaveTransfer(context.Background(), ledger.TransferParams{
		FromAccountID: from,
		ToAccountID:   to,
		Date:          date,
		Amount:        amount,
		BudgetGroup:   ledger.GroupDGR,
		Category:      "Retirement",
		Description:   "401k Contribution",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
}

func TestService_SaveTransfer_SameAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := ledger.NewService(ledger.NewMockRepository(ctrl))

	id := uuid.New()

	_, err := svc.SaveTransfer(context.Background(), ledger.TransferParams{
		FromAccountID: id,
		ToAccountID:   id,
		Amount:        decimal.NewFromFloat(10),
	})
	assert.Error(t, err)
}

// fakeRepo is an in-memory Repository with the same get-or-create
// semantics as the SQL store's natural-key upserts. It exists so the
// mirroring idempotence contract can be exercised end to end.
type fakeRepo struct {
	ledger.Repository // panic on the methods the test never touches

	entries   []*ledger.Entry
	transfers []*ledger.Transfer
}

func (f *fakeRepo) UpsertEntry(_ context.Context, e *ledger.Entry) (bool, error) {
	for _, existing := range f.entries {
		if existing.AccountID == e.AccountID &&
			existing.Kind == e.Kind &&
			existing.Date.Equal(e.Date) &&
			existing.Amount.Equal(e.Amount) &&
			existing.Description == e.Description {
			existing.BudgetGroup = e.BudgetGroup
			existing.Category = e.Category
			existing.Location = e.Location
			existing.Slug = e.Slug
			existing.Tag = e.Tag
			e.ID = existing.ID

			return true, nil
		}
	}

	e.ID = uuid.New()
	f.entries = append(f.entries, e)

	return false, nil
}

func (f *fakeRepo) SaveTransfer(ctx context.Context, t *ledger.Transfer, wd, dep *ledger.Entry) error {
	if _, err := f.UpsertEntry(ctx, wd); err != nil {
		return err
	}

	if _, err := f.UpsertEntry(ctx, dep); err != nil {
		return err
	}

	t.ID = uuid.New()
	f.transfers = append(f.transfers, t)

	return nil
}

func TestService_SaveTransfer_Idempotent(t *testing.T) {
	repo := &fakeRepo{}
	svc := ledger.NewService(repo)

	params := ledger.TransferParams{
		FromAccountID: uuid.New(),
		ToAccountID:   uuid.New(),
		Date:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromFloat(250),
		BudgetGroup:   ledger.GroupDGR,
		Category:      "Savings",
		Description:   "Monthly transfer",
	}

	_, err := svc.SaveTransfer(context.Background(), params)
	require.NoError(t, err)

	// Second save with updated classification must not duplicate rows.
	params.BudgetGroup = ledger.GroupDiscretionary
	params.Category = "Goals"

	_, err = svc.SaveTransfer(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, repo.entries, 2)

	var withdrawals, deposits int

	for _, e := range repo.entries {
		assert.Equal(t, ledger.GroupDiscretionary, e.BudgetGroup)
		assert.Equal(t, "Goals", e.Category)

		switch e.Kind {
		case ledger.KindWithdrawal:
			withdrawals++
		case ledger.KindDeposit:
			deposits++
		}
	}

	assert.Equal(t, 1, withdrawals)
	assert.Equal(t, 1, deposits)
}

func TestService_RecordEntry_DepositAndWithdrawalSameKey(t *testing.T) {
	repo := &fakeRepo{}
	svc := ledger.NewService(repo)

	params := ledger.EntryParams{
		AccountID:   uuid.New(),
		Kind:        ledger.KindDeposit,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromFloat(100),
		Description: "ATM",
	}

	dep, err := svc.RecordEntry(context.Background(), params)
	require.NoError(t, err)

	// A withdrawal matching the deposit on every other key field is a
	// distinct entry, not a re-submission of the deposit.
	params.Kind = ledger.KindWithdrawal

	wd, err := svc.RecordEntry(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, repo.entries, 2)
	assert.NotEqual(t, dep.ID, wd.ID)
	assert.Equal(t, ledger.KindDeposit, repo.entries[0].Kind)
	assert.Equal(t, ledger.KindWithdrawal, repo.entries[1].Kind)

	// Re-submitting the withdrawal still updates in place.
	params.Category = "Cash"

	again, err := svc.RecordEntry(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, repo.entries, 2)
	assert.Equal(t, wd.ID, again.ID)
	assert.Equal(t, "Cash", repo.entries[1].Category)
}

func TestService_ImportBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	accountID := uuid.New()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	params := []ledger.EntryParams{
		{AccountID: accountID, Kind: ledger.KindWithdrawal, Date: date, Amount: decimal.NewFromFloat(10), Description: "Coffee"},
		{AccountID: accountID, Kind: ledger.KindWithdrawal, Date: date, Amount: decimal.NewFromFloat(20), Description: "Lunch"},
	}

	gomock.InOrder(
		repo.EXPECT().UpsertEntry(gomock.Any(), gomock.Any()).Return(false, nil),
		repo.EXPECT().UpsertEntry(gomock.Any(), gomock.Any()).Return(true, nil),
	)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
}

func TestService_RecordPaycheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	userID := uuid.New()
	checking := uuid.New()
	acct401k := uuid.New()
	date := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	var (
		entries   []*ledger.Entry
		statutory []*ledger.Statutory
		transfers []*ledger.Transfer
	)

	repo.EXPECT().UpsertEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *ledger.Entry) (bool, error) {
			entries = append(entries, e)
			return false, nil
		}).AnyTimes()
	repo.EXPECT().UpsertStatutory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, st *ledger.Statutory) (bool, error) {
			statutory = append(statutory, st)
			return false, nil
		}).AnyTimes()
	repo.EXPECT().SaveTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *ledger.Transfer, _, _ *ledger.Entry) error {
			transfers = append(transfers, tr)
			return nil
		}).AnyTimes()

	err := svc.RecordPaycheck(context.Background(), ledger.PaycheckParams{
		UserID:            userID,
		CheckingAccountID: checking,
		Account401kID:     acct401k,
		AccountHSAID:      checking, // HSA contributions land straight in checking here
		Date:              date,
		GrossIncome:       decimal.NewFromFloat(4200),
		FederalIncomeTax:  decimal.NewFromFloat(550),
		SocialSecurityTax: decimal.NewFromFloat(260.40),
		Medicare:          decimal.NewFromFloat(60.90),
		StateIncomeTax:    decimal.Zero, // no state income tax: no entry
		Dental:            decimal.NewFromFloat(12.50),
		Medical:           decimal.Zero,
		Vision:            decimal.Zero,
		Retirement401k:    decimal.NewFromFloat(420),
		RetirementHSA:     decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	// Gross income deposit + dental withdrawal + HSA deposit (same account).
	require.Len(t, entries, 3)
	assert.Equal(t, ledger.KindDeposit, entries[0].Kind)
	assert.Equal(t, "Gross Income", entries[0].Description)
	assert.Equal(t, ledger.KindWithdrawal, entries[1].Kind)
	assert.Equal(t, ledger.GroupMandatory, entries[1].BudgetGroup)
	assert.Equal(t, "HSA Contribution", entries[2].Description)

	// Federal, social security, medicare; state skipped at zero.
	require.Len(t, statutory, 3)
	for _, st := range statutory {
		assert.Equal(t, userID, st.UserID)
		assert.Equal(t, "Taxes", st.Category)
	}

	// 401k goes to a separate account, so it is mirrored as a transfer.
	require.Len(t, transfers, 1)
	assert.Equal(t, checking, transfers[0].FromAccountID)
	assert.Equal(t, acct401k, transfers[0].ToAccountID)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "grocery-store-42", ledger.Slugify("Grocery Store #42"))
	assert.Equal(t, "401k-contribution", ledger.Slugify("401k Contribution"))
	assert.Equal(t, "", ledger.Slugify("!!!"))
}
