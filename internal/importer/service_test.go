package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwhitten/nestegg/internal/importer"
	"github.com/rwhitten/nestegg/internal/ledger"
)

// fakeBatcher records the batch it was handed and reports every row as
// newly created.
type fakeBatcher struct {
	got []ledger.EntryParams
}

func (f *fakeBatcher) ImportBatch(_ context.Context, params []ledger.EntryParams) (*ledger.ImportResult, error) {
	f.got = params
	return &ledger.ImportResult{Created: len(params)}, nil
}

func TestService_Import_StampsAccountAndGroup(t *testing.T) {
	batcher := &fakeBatcher{}
	svc := importer.NewService(batcher)

	accountID := uuid.New()
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2024-06-03,Paycheck,2950.00",
		"2024-06-05,Grocery Store,-182.44",
		"bad-date,Mystery,-10.00",
	}, "\n")

	summary, err := svc.Import(context.Background(), importer.SourceBankCSV,
		accountID, ledger.GroupDiscretionary, strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Created)
	assert.Zero(t, summary.Updated)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, 4, summary.Skipped[0].Row)

	require.Len(t, batcher.got, 2)

	deposit := batcher.got[0]
	assert.Equal(t, accountID, deposit.AccountID)
	assert.Equal(t, ledger.KindDeposit, deposit.Kind)
	// Deposits are income: no budget group.
	assert.Empty(t, deposit.BudgetGroup)

	withdrawal := batcher.got[1]
	assert.Equal(t, accountID, withdrawal.AccountID)
	assert.Equal(t, ledger.GroupDiscretionary, withdrawal.BudgetGroup)
}

func TestService_Import_UnknownSource(t *testing.T) {
	svc := importer.NewService(&fakeBatcher{})

	_, err := svc.Import(context.Background(), importer.Source("ofx"),
		uuid.New(), ledger.GroupDiscretionary, strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown import source")
}
