package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rwhitten/nestegg/internal/user"
)

func TestUser_RetirementDate(t *testing.T) {
	type testCase struct {
		name          string
		dob           time.Time
		retirementAge float64
		want          time.Time
	}

	tests := []testCase{
		{
			name:          "WholeYears",
			dob:           time.Date(1960, time.March, 15, 0, 0, 0, 0, time.UTC),
			retirementAge: 65,
			want:          time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "FractionalYearsCarryAsMonths",
			dob:           time.Date(1960, time.March, 15, 0, 0, 0, 0, time.UTC),
			retirementAge: 67.5,
			want:          time.Date(2027, time.September, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &user.User{DateOfBirth: tt.dob, RetirementAge: tt.retirementAge}
			assert.Equal(t, tt.want, u.RetirementDate())
		})
	}
}

func TestUser_Age(t *testing.T) {
	u := &user.User{DateOfBirth: time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)}
	at := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 34, u.Age(at), 0.01)
}
