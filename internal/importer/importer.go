package importer

import (
	"fmt"
	"io"

	"github.com/rwhitten/nestegg/internal/ledger"
)

// Source identifies a supported statement export format.
type Source string

const (
	SourceBankCSV Source = "bankcsv"
)

// RowError reports one malformed statement row with enough context for
// the caller to find it in the file. A bad row never aborts the batch.
type RowError struct {
	Row   int
	Field string
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: bad %s: %v", e.Row, e.Field, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Result is a parse outcome: the rows that parsed, as entry params
// still missing an account, and the rows skipped with the reason per
// row. The statement amount's sign is folded into Kind; Amount is
// always a non-negative magnitude.
type Result struct {
	Entries []ledger.EntryParams
	Skipped []RowError
}

type Parser interface {
	Parse(r io.Reader) (*Result, error)
}
