package util

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	cases := []struct {
		name      string
		at        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			at:        time.Date(2025, time.June, 15, 13, 45, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "leap february",
			at:        time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december",
			at:        time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := MonthRange(tc.at)
			if !start.Equal(tc.wantStart) {
				t.Errorf("Expected start %v, got %v", tc.wantStart, start)
			}
			if !end.Equal(tc.wantEnd) {
				t.Errorf("Expected end %v, got %v", tc.wantEnd, end)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)); got != 29 {
		t.Errorf("Expected 29 days in leap February, got %d", got)
	}
	if got := DaysInMonth(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)); got != 28 {
		t.Errorf("Expected 28 days, got %d", got)
	}
	if got := DaysInMonth(time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)); got != 30 {
		t.Errorf("Expected 30 days, got %d", got)
	}
}
