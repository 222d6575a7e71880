package prayer

import "testing"

func TestTo12Hour(t *testing.T) {
	cases := []struct {
		in     string
		clock  string
		period string
	}{
		{"00:05", "12:05", "AM"},
		{"05:12", "05:12", "AM"},
		{"12:00", "12:00", "PM"},
		{"13:30", "01:30", "PM"},
		{"23:59", "11:59", "PM"},
		{"", "", ""},
		{"25:00", "", ""},
	}
	for _, c := range cases {
		clock, period := To12Hour(c.in)
		if clock != c.clock || period != c.period {
			t.Errorf("To12Hour(%q) = (%q, %q), want (%q, %q)", c.in, clock, period, c.clock, c.period)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		in    string
		delta int
		want  string
	}{
		{"05:12", 10, "05:22"},
		{"23:55", 10, "00:05"},
		{"00:05", -10, "23:55"},
		{"12:00", 0, "12:00"},
		{"", 10, ""},
	}
	for _, c := range cases {
		if got := AddMinutes(c.in, c.delta); got != c.want {
			t.Errorf("AddMinutes(%q, %d) = %q, want %q", c.in, c.delta, got, c.want)
		}
	}
}
