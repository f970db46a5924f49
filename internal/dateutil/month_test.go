package dateutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rwhitten/nestegg/internal/dateutil"
)

func TestMonthWindow(t *testing.T) {
	m := dateutil.Month{Year: 2024, Month: time.January}

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.Start())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m.End())
	assert.Equal(t, m.End(), m.Next().Start())
}

func TestMonthAddMonths(t *testing.T) {
	type testCase struct {
		name string
		m    dateutil.Month
		n    int
		want dateutil.Month
	}

	tests := []testCase{
		{
			name: "ForwardAcrossYear",
			m:    dateutil.Month{Year: 2023, Month: time.November},
			n:    3,
			want: dateutil.Month{Year: 2024, Month: time.February},
		},
		{
			name: "BackwardAcrossYear",
			m:    dateutil.Month{Year: 2024, Month: time.February},
			n:    -6,
			want: dateutil.Month{Year: 2023, Month: time.August},
		},
		{
			name: "Zero",
			m:    dateutil.Month{Year: 2024, Month: time.June},
			n:    0,
			want: dateutil.Month{Year: 2024, Month: time.June},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.AddMonths(tt.n))
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	jan := dateutil.Month{Year: 2024, Month: time.January}
	jul := dateutil.Month{Year: 2024, Month: time.July}

	assert.Equal(t, 6, dateutil.MonthsBetween(jan, jul))
	assert.Equal(t, -6, dateutil.MonthsBetween(jul, jan))
	assert.Equal(t, 18, dateutil.MonthsBetween(jan, dateutil.Month{Year: 2025, Month: time.July}))
}

func TestMonthOrdering(t *testing.T) {
	dec23 := dateutil.Month{Year: 2023, Month: time.December}
	jan24 := dateutil.Month{Year: 2024, Month: time.January}

	assert.True(t, dec23.Before(jan24))
	assert.True(t, jan24.After(dec23))
	assert.False(t, jan24.Before(jan24))
}

func TestEpochMillisRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	ms := dateutil.EpochMillis(at)
	assert.Equal(t, at, dateutil.FromEpochMillis(ms))
}

func TestWindowTotalMonths(t *testing.T) {
	assert.Equal(t, 6, dateutil.Window{Months: 6}.TotalMonths())
	assert.Equal(t, 30, dateutil.Window{Years: 2, Months: 6}.TotalMonths())
}
