package projection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/account"
	"github.com/rwhitten/nestegg/internal/dateutil"
)

// ErrEmptyHistory marks projection queries that need at least one
// ledger entry to anchor the time axis.
var ErrEmptyHistory = errors.New("account has no entry history")

// DefaultWindow is the trailing history sampled when the caller does
// not ask for a specific range.
var DefaultWindow = dateutil.Window{Months: 6}

// BalanceSource supplies the month-end balance history a curve is
// fitted to. *account.Service satisfies it.
//
//go:generate mockgen -source=service.go -destination=service_mock.go -package=projection
type BalanceSource interface {
	BalanceIncluding(ctx context.Context, a *account.Account, m dateutil.Month) (decimal.Decimal, error)
	LatestEntryDate(ctx context.Context, a *account.Account) (*time.Time, error)
}

type Service struct {
	balances BalanceSource
}

func NewService(balances BalanceSource) *Service {
	return &Service{balances: balances}
}

// BuildCurve fits a balance-vs-time curve through the account's
// month-end balances over the trailing window, anchored at the latest
// entry date. Time is milliseconds since the epoch. An account with no
// entries gets the identically-zero curve rather than an error.
func (s *Service) BuildCurve(ctx context.Context, a *account.Account, win dateutil.Window, kind Kind) (Curve, error) {
	pts, err := s.sample(ctx, a, win)
	if err != nil {
		return nil, err
	}

	if pts == nil {
		return Zero(), nil
	}

	curve, err := Fit(pts, kind)
	if err != nil {
		return nil, fmt.Errorf("fitting balance curve: %w", err)
	}

	return curve, nil
}

// EstimateBalance evaluates the fitted curve at the first instant of
// the requested month. The same curve serves dates inside the sampled
// history and dates beyond it; extrapolation is not special-cased.
func (s *Service) EstimateBalance(ctx context.Context, a *account.Account, m dateutil.Month, win dateutil.Window, kind Kind) (decimal.Decimal, error) {
	curve, err := s.BuildCurve(ctx, a, win, kind)
	if err != nil {
		return decimal.Zero, err
	}

	y := curve.Evaluate(dateutil.EpochMillis(m.Start()))

	return decimal.NewFromFloat(y).Round(2), nil
}

// TimeToReach inverts the sampled history into a time-vs-balance curve
// and evaluates it at the target amount. For a debt account a target
// of zero yields the projected payoff date. Duplicate balance values
// are collapsed to the earliest month they occur in, keeping the
// inverse well-defined as a function.
func (s *Service) TimeToReach(ctx context.Context, a *account.Account, target decimal.Decimal, win dateutil.Window, kind Kind) (time.Time, error) {
	pts, err := s.sample(ctx, a, win)
	if err != nil {
		return time.Time{}, err
	}

	if pts == nil {
		return time.Time{}, ErrEmptyHistory
	}

	seen := make(map[float64]bool, len(pts))
	inverse := make([]Point, 0, len(pts))

	// pts is in month order, so keeping the first occurrence keeps the
	// earliest date per balance value.
	for _, p := range pts {
		if seen[p.Y] {
			continue
		}

		seen[p.Y] = true

		inverse = append(inverse, Point{X: p.Y, Y: p.X})
	}

	curve, err := Fit(inverse, kind)
	if err != nil {
		return time.Time{}, fmt.Errorf("fitting inverse curve: %w", err)
	}

	ms := curve.Evaluate(target.InexactFloat64())

	return dateutil.FromEpochMillis(ms), nil
}

// sample returns the month-end balance points over the window, oldest
// first, or nil when the account has no entries.
func (s *Service) sample(ctx context.Context, a *account.Account, win dateutil.Window) ([]Point, error) {
	latest, err := s.balances.LatestEntryDate(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("finding latest entry: %w", err)
	}

	if latest == nil {
		return nil, nil
	}

	months := win.TotalMonths()
	if months <= 0 {
		months = DefaultWindow.TotalMonths()
	}

	last := dateutil.MonthOf(*latest)
	pts := make([]Point, 0, months+1)

	for m := last.AddMonths(-months); !m.After(last); m = m.Next() {
		bal, err := s.balances.BalanceIncluding(ctx, a, m)
		if err != nil {
			return nil, fmt.Errorf("sampling balance for %s: %w", m, err)
		}

		pts = append(pts, Point{
			X: dateutil.EpochMillis(m.Start()),
			Y: bal.InexactFloat64(),
		})
	}

	return pts, nil
}
