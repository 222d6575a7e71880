package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/deenbuddy/minaret/internal/hijri"
	"github.com/deenbuddy/minaret/internal/model"
)

// FormatHHMM renders an hour value as "HH:MM" on the 24-hour clock,
// rounded to the nearest minute. NaN renders as the empty string.
func FormatHHMM(hours float64) string {
	if math.IsNaN(hours) {
		return ""
	}
	total := int(math.Round(fixHour(hours)*60)) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// BuildDayTimes computes one day and formats it for API payloads.
func BuildDayTimes(date time.Time, loc Location, p Params) (model.DayTimes, error) {
	t, err := ComputeDay(date, loc, p)
	if err != nil {
		return model.DayTimes{}, err
	}
	method, _ := MethodByName(p.Method)
	school := p.School
	if school == "" {
		school = SchoolShafi
	}
	return model.DayTimes{
		Date:     date.Format(time.DateOnly),
		Hijri:    hijri.Format(hijri.FromTime(date)),
		Fajr:     FormatHHMM(t.Fajr),
		Sunrise:  FormatHHMM(t.Sunrise),
		Dhuhr:    FormatHHMM(t.Dhuhr),
		Asr:      FormatHHMM(t.Asr),
		Maghrib:  FormatHHMM(t.Maghrib),
		Isha:     FormatHHMM(t.Isha),
		Midnight: FormatHHMM(t.Midnight),
		Method:   method.Name,
		School:   school,
	}, nil
}

// BuildRange computes consecutive days starting at start.
func BuildRange(start time.Time, days int, loc Location, p Params) ([]model.DayTimes, error) {
	out := make([]model.DayTimes, 0, days)
	for i := 0; i < days; i++ {
		day, err := BuildDayTimes(start.AddDate(0, 0, i), loc, p)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

// CacheKey renders the redis key for one computed day, rounded to four
// decimal places of coordinate so nearby requests share an entry.
func CacheKey(date time.Time, loc Location, p Params) string {
	return fmt.Sprintf("prayer:%s:%.4f:%.4f:%d:%s:%s:%s",
		date.Format(time.DateOnly), loc.Latitude, loc.Longitude,
		loc.TzOffsetMin, p.Method, p.School, p.HighLatRule)
}
