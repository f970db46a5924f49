package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "amount" with value "-10.00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a statement export format.
// Column names are matched case-insensitively. Adding a new format is
// just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
	CategoryCol string // optional
	LocationCol string // optional
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// amountField names the column reported in row errors for this profile.
func (p Profile) amountField() string {
	if p.AmountMode == amountSplit {
		return p.DebitCol + "/" + p.CreditCol
	}

	return p.AmountCol
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first to avoid false
// matches.
var profiles = []Profile{
	{
		Name:        "split",
		DateCol:     "date",
		DescCol:     "description",
		AmountMode:  amountSplit,
		DebitCol:    "debit",
		CreditCol:   "credit",
		CategoryCol: "category",
		LocationCol: "location",
	},
	{
		Name:        "signed",
		DateCol:     "date",
		DescCol:     "description",
		AmountMode:  amountSingle,
		AmountCol:   "amount",
		CategoryCol: "category",
		LocationCol: "location",
	},
	{
		Name:       "posted",
		DateCol:    "posting date",
		DescCol:    "description",
		AmountMode: amountSingle,
		AmountCol:  "amount",
	},
}
