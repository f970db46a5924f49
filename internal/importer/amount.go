package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/ledger"
)

// parseRowAmount extracts the magnitude and entry kind from a row
// based on the profile's amount mode. A negative signed amount, or a
// value in the debit column, is a withdrawal.
func parseRowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, ledger.Kind, error) {
	if p.AmountMode == amountSplit {
		if s := cellValue(row, cols[p.DebitCol]); s != "" {
			d, err := parseAmount(s)
			if err != nil {
				return decimal.Zero, "", err
			}

			return d.Abs(), ledger.KindWithdrawal, nil
		}

		if s := cellValue(row, cols[p.CreditCol]); s != "" {
			d, err := parseAmount(s)
			if err != nil {
				return decimal.Zero, "", err
			}

			return d.Abs(), ledger.KindDeposit, nil
		}

		return decimal.Zero, ledger.KindDeposit, nil
	}

	s := cellValue(row, cols[p.AmountCol])
	if s == "" {
		return decimal.Zero, ledger.KindDeposit, nil
	}

	d, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, "", err
	}

	if d.IsNegative() {
		return d.Neg(), ledger.KindWithdrawal, nil
	}

	return d, ledger.KindDeposit, nil
}

// parseAmount parses a statement amount string. Handles currency
// symbols, thousands separators, and accounting-style parentheses for
// negatives: "$1,234.56", "-588.74", "(75.00)".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q", s)
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}
