package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaycheckParams is the output contract of the pay-stub importers: one
// gross income figure plus the statutory withholdings and pre-tax
// deductions taken from it.
type PaycheckParams struct {
	UserID            uuid.UUID
	CheckingAccountID uuid.UUID
	Account401kID     uuid.UUID
	AccountHSAID      uuid.UUID
	Date              time.Time

	GrossIncome       decimal.Decimal
	FederalIncomeTax  decimal.Decimal
	SocialSecurityTax decimal.Decimal
	Medicare          decimal.Decimal
	StateIncomeTax    decimal.Decimal

	Dental  decimal.Decimal
	Medical decimal.Decimal
	Vision  decimal.Decimal

	Retirement401k decimal.Decimal
	RetirementHSA  decimal.Decimal
}

// RecordPaycheck records one pay stub: a gross-income deposit on the
// checking account, statutory entries for each withholding, mandatory
// withdrawals for insurance deductions, and the 401k/HSA contributions
// as transfers out of checking. Every row is a natural-key upsert, so
// re-submitting the same stub is a safe retry rather than a duplicate.
func (s *Service) RecordPaycheck(ctx context.Context, p PaycheckParams) error {
	_, err := s.RecordEntry(ctx, EntryParams{
		AccountID:   p.CheckingAccountID,
		Kind:        KindDeposit,
		Date:        p.Date,
		Amount:      p.GrossIncome,
		Category:    "Gross Income",
		Description: "Gross Income",
		Location:    "Work",
	})
	if err != nil {
		return fmt.Errorf("recording gross income: %w", err)
	}

	withholdings := []struct {
		description string
		amount      decimal.Decimal
	}{
		{"Federal Income Tax", p.FederalIncomeTax},
		{"Social Security Tax", p.SocialSecurityTax},
		{"Medicare Tax", p.Medicare},
		{"State Income Tax", p.StateIncomeTax},
	}

	for _, w := range withholdings {
		if !w.amount.IsPositive() {
			continue
		}

		_, err := s.RecordStatutory(ctx, StatutoryParams{
			UserID:      p.UserID,
			Date:        p.Date,
			Amount:      w.amount,
			Category:    "Taxes",
			Description: w.description,
			Location:    "Work",
		})
		if err != nil {
			return fmt.Errorf("recording %s: %w", w.description, err)
		}
	}

	deductions := []struct {
		description string
		amount      decimal.Decimal
	}{
		{"Dental", p.Dental},
		{"Medical", p.Medical},
		{"Vision", p.Vision},
	}

	for _, d := range deductions {
		if !d.amount.IsPositive() {
			continue
		}

		_, err := s.RecordEntry(ctx, EntryParams{
			AccountID:   p.CheckingAccountID,
			Kind:        KindWithdrawal,
			Date:        p.Date,
			Amount:      d.amount,
			BudgetGroup: GroupMandatory,
			Category:    "Mandatory",
			Description: d.description,
			Location:    "Work",
		})
		if err != nil {
			return fmt.Errorf("recording %s deduction: %w", d.description, err)
		}
	}

	contributions := []struct {
		description string
		category    string
		accountID   uuid.UUID
		amount      decimal.Decimal
	}{
		{"401k Contribution", "401k", p.Account401kID, p.Retirement401k},
		{"HSA Contribution", "HSA", p.AccountHSAID, p.RetirementHSA},
	}

	for _, c := range contributions {
		if !c.amount.IsPositive() {
			continue
		}

		// A contribution into a separate account is a transfer out of
		// checking; when the pay stub deposits straight into the
		// destination account there is no source leg to mirror.
		if c.accountID != p.CheckingAccountID {
			_, err := s.SaveTransfer(ctx, TransferParams{
				FromAccountID: p.CheckingAccountID,
				ToAccountID:   c.accountID,
				Date:          p.Date,
				Amount:        c.amount,
				BudgetGroup:   GroupDGR,
				Category:      "Retirement",
				Description:   c.description,
				Location:      "Work",
			})
			if err != nil {
				return fmt.Errorf("recording %s: %w", c.description, err)
			}

			continue
		}

		_, err := s.RecordEntry(ctx, EntryParams{
			AccountID:   c.accountID,
			Kind:        KindDeposit,
			Date:        p.Date,
			Amount:      c.amount,
			Category:    c.category,
			Description: c.description,
			Location:    "Work",
		})
		if err != nil {
			return fmt.Errorf("recording %s: %w", c.description, err)
		}
	}

	return nil
}
