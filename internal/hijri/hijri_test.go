package hijri

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestFromTimeAnchors(t *testing.T) {
	cases := []struct {
		greg       time.Time
		hy, hm, hd int
	}{
		{date(2024, time.March, 11), 1445, 9, 1},  // 1 Ramadan 1445
		{date(2024, time.April, 10), 1445, 10, 1}, // Eid al-Fitr 1445
		{date(2026, time.August, 23), 1448, 3, 9},
	}
	for _, tc := range cases {
		h := FromTime(tc.greg)
		assert.Equal(t, tc.hy, h.Year, "year for %s", tc.greg.Format(time.DateOnly))
		assert.Equal(t, tc.hm, h.Month, "month for %s", tc.greg.Format(time.DateOnly))
		assert.Equal(t, tc.hd, h.Day, "day for %s", tc.greg.Format(time.DateOnly))
	}
}

func TestToTimeRoundTrip(t *testing.T) {
	start := date(2020, time.January, 1)
	for i := 0; i < 2000; i += 13 {
		g := start.AddDate(0, 0, i)
		h := FromTime(g)
		back := ToTime(h.Year, h.Month, h.Day)
		require.Equal(t, g.Format(time.DateOnly), back.Format(time.DateOnly))
	}
}

func TestConsecutiveDaysAdvance(t *testing.T) {
	prev := FromTime(date(2025, time.January, 1))
	for i := 1; i < 400; i++ {
		cur := FromTime(date(2025, time.January, 1).AddDate(0, 0, i))
		switch {
		case cur.Day == prev.Day+1:
			assert.Equal(t, prev.Month, cur.Month)
		case cur.Day == 1 && cur.Month == prev.Month+1:
			assert.Equal(t, prev.Year, cur.Year)
			assert.Contains(t, []int{29, 30}, prev.Day)
		case cur.Day == 1 && cur.Month == 1:
			assert.Equal(t, prev.Year+1, cur.Year)
			assert.Equal(t, 12, prev.Month)
		default:
			t.Fatalf("non-contiguous hijri dates: %+v then %+v", prev, cur)
		}
		prev = cur
	}
}

func TestDaysInMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		assert.Contains(t, []int{29, 30}, DaysInMonth(1446, m), "month %d", m)
	}
	// Ramadan 1445 had 30 tabular days (Mar 11 .. Apr 9, 2024).
	assert.Equal(t, 30, DaysInMonth(1445, 9))
}

func TestYearLengthMatchesLeapFlag(t *testing.T) {
	for y := 1440; y <= 1470; y++ {
		length := 0
		for m := 1; m <= 12; m++ {
			length += DaysInMonth(y, m)
		}
		if IsLeapYear(y) {
			assert.Equal(t, 355, length, "year %d", y)
		} else {
			assert.Equal(t, 354, length, "year %d", y)
		}
	}
}

func TestFormat(t *testing.T) {
	h := FromTime(date(2026, time.August, 23))
	assert.Equal(t, "9 Rabi' al-Awwal 1448 AH", Format(h))
}

func TestMonthNameBounds(t *testing.T) {
	assert.Equal(t, "Muharram", MonthName(1))
	assert.Equal(t, "Dhu al-Hijjah", MonthName(12))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}

func TestUpcomingEvents(t *testing.T) {
	events := UpcomingEvents(date(2024, time.March, 11), 3)
	require.Len(t, events, 3)
	assert.Equal(t, "First day of Ramadan", events[0].Name)
	assert.Equal(t, "2024-03-11", events[0].Gregorian)
	assert.Equal(t, "Laylat al-Qadr", events[1].Name)
	assert.Equal(t, "Eid al-Fitr", events[2].Name)
	assert.Equal(t, "2024-04-10", events[2].Gregorian)
}

func TestUpcomingEventsSpanYears(t *testing.T) {
	events := UpcomingEvents(date(2024, time.March, 11), 12)
	require.Len(t, events, 12)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].Gregorian <= events[i].Gregorian)
	}
}

func TestMonthView(t *testing.T) {
	days := Month(1445, 9)
	require.Len(t, days, 30)
	assert.Equal(t, "2024-03-11", days[0].Gregorian)
	assert.Equal(t, "Monday", days[0].Weekday)
	assert.Equal(t, "First day of Ramadan", days[0].Event)
	assert.Equal(t, "Laylat al-Qadr", days[26].Event)
	assert.Equal(t, "", days[1].Event)
}

func TestEventsForYear(t *testing.T) {
	events := EventsForYear(1445)
	require.Len(t, events, 10)
	for _, e := range events {
		back := FromTime(ToTime(1445, e.Month, e.Day))
		assert.Equal(t, e.Month, back.Month)
		assert.Equal(t, e.Day, back.Day)
	}
}
