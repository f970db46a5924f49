package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/rwhitten/nestegg/internal/ledger"
)

// Batcher is the slice of the ledger service an import lands through.
type Batcher interface {
	ImportBatch(ctx context.Context, params []ledger.EntryParams) (*ledger.ImportResult, error)
}

type Service struct {
	entries Batcher
	parsers map[Source]Parser
}

func NewService(entries Batcher) *Service {
	return &Service{
		entries: entries,
		parsers: map[Source]Parser{
			SourceBankCSV: NewCSVParser(),
		},
	}
}

// Summary reports how an import landed: rows created, rows that only
// refreshed an existing natural key, and rows skipped as malformed.
type Summary struct {
	Created int
	Updated int
	Skipped []RowError
}

// Import parses the statement and upserts every parsed row against the
// given account. Withdrawals default to the supplied budget group;
// deposits are income and carry no group. Re-running the same file is
// idempotent because rows are keyed by (account, kind, date, amount,
// description).
func (s *Service) Import(ctx context.Context, source Source, accountID uuid.UUID, group ledger.BudgetGroup, r io.Reader) (*Summary, error) {
	parser, ok := s.parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %s", source)
	}

	result, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", source, err)
	}

	params := make([]ledger.EntryParams, 0, len(result.Entries))

	for _, p := range result.Entries {
		p.AccountID = accountID

		if p.Kind == ledger.KindWithdrawal {
			p.BudgetGroup = group
		}

		params = append(params, p)
	}

	batch, err := s.entries.ImportBatch(ctx, params)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Created: batch.Created,
		Updated: batch.Updated,
		Skipped: result.Skipped,
	}, nil
}
