package prayer

import (
	"fmt"
	"strconv"
	"strings"
)

// To12Hour converts a 24-hour "HH:MM" string to its 12-hour clock form
// plus period. Empty input stays empty.
func To12Hour(hhmm string) (clock, period string) {
	h, m, ok := splitHHMM(hhmm)
	if !ok {
		return "", ""
	}
	period = "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d", h12, m), period
}

// AddMinutes shifts an "HH:MM" string by delta minutes, wrapping at
// midnight. Empty input stays empty.
func AddMinutes(hhmm string, delta int) string {
	h, m, ok := splitHHMM(hhmm)
	if !ok {
		return ""
	}
	total := (h*60 + m + delta) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func splitHHMM(hhmm string) (h, m int, ok bool) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
