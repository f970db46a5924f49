package retirement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/account"
	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/projection"
	"github.com/rwhitten/nestegg/internal/user"
)

// DefaultExpectedDeathAge bounds the simulation when the user has not
// set one.
const DefaultExpectedDeathAge = 85

// BalanceSource reconstructs historical balances from the ledger.
// *account.Service satisfies it.
//
//go:generate mockgen -source=service.go -destination=service_mock.go -package=retirement
type BalanceSource interface {
	BalanceAsOf(ctx context.Context, a *account.Account, cutoff time.Time) (decimal.Decimal, error)
}

// Projector estimates a future balance from the fitted trend curve.
// *projection.Service satisfies it.
type Projector interface {
	EstimateBalance(ctx context.Context, a *account.Account, m dateutil.Month, win dateutil.Window, kind projection.Kind) (decimal.Decimal, error)
}

type Service struct {
	balances  BalanceSource
	projector Projector
}

func NewService(balances BalanceSource, projector Projector) *Service {
	return &Service{balances: balances, projector: projector}
}

// Outlook simulates the account's drawdown from the user's retirement
// date to their expected death date. A retirement date still in the
// future anchors the run on the projected balance at that date; one in
// the past anchors it on the balance the ledger actually showed then.
func (s *Service) Outlook(ctx context.Context, u *user.User, a *account.Account, win dateutil.Window, kind projection.Kind) ([]Point, error) {
	retirement := u.RetirementDate()

	var (
		balance decimal.Decimal
		err     error
	)

	if retirement.After(time.Now().UTC()) {
		balance, err = s.projector.EstimateBalance(ctx, a, dateutil.MonthOf(retirement), win, kind)
		if err != nil {
			return nil, fmt.Errorf("projecting balance at retirement: %w", err)
		}
	} else {
		balance, err = s.balances.BalanceAsOf(ctx, a, retirement)
		if err != nil {
			return nil, fmt.Errorf("reading balance at retirement: %w", err)
		}
	}

	withdrawalPct := a.YearlyWithdrawalPct
	if withdrawalPct == 0 {
		withdrawalPct = u.YearlyWithdrawalPct
	}

	deathAge := u.ExpectedDeathAge
	if deathAge == 0 {
		deathAge = DefaultExpectedDeathAge
	}

	return Simulate(SimulationParams{
		BalanceAtRetirement: balance,
		RetirementDate:      retirement,
		YearlyWithdrawalPct: withdrawalPct,
		MonthlyInterestPct:  a.MonthlyInterestPct,
		AgeAtRetirement:     u.RetirementAge,
		ExpectedDeathAge:    deathAge,
	}), nil
}
