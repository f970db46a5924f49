package user

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID          uuid.UUID
	Name        string
	Email       string
	DateOfBirth time.Time

	// RetirementAge is in years and may be fractional, e.g. 67.5.
	RetirementAge float64

	// YearlyWithdrawalPct is the percentage of a retirement account
	// drawn down per year after retirement.
	YearlyWithdrawalPct float64

	// ExpectedDeathAge bounds retirement projections, in years.
	ExpectedDeathAge float64

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// RetirementDate is the date of birth advanced by the retirement age,
// with fractional years carried as whole months.
func (u *User) RetirementDate() time.Time {
	months := int(math.Round(u.RetirementAge * 12))

	return u.DateOfBirth.AddDate(0, months, 0)
}

// Age returns the user's age in fractional years at the given time.
func (u *User) Age(at time.Time) float64 {
	const yearHours = 365.25 * 24

	return at.Sub(u.DateOfBirth).Hours() / yearHours
}
