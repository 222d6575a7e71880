// Package prayer computes the daily prayer timetable from solar position.
// The algorithm follows the PrayTimes.org calculation: sun declination and
// the equation of time from the Julian date, hour angles for the twilight
// and shadow-length events, then method and high-latitude adjustments.
package prayer

import (
	"math"
	"time"
)

const riseSetAngle = 0.833 // atmospheric refraction plus solar radius

// Location fixes a computation point on Earth. TzOffsetMin is the local
// clock's offset east of UTC in minutes.
type Location struct {
	Latitude    float64
	Longitude   float64
	TzOffsetMin int
}

// Params selects the calculation convention for one computation.
type Params struct {
	Method      string
	School      string
	HighLatRule string
}

// Times holds one day of prayer times as local-clock hours. Values may
// fall outside [0, 24) and are wrapped at formatting time. A time the sun
// never reaches at the location is NaN.
type Times struct {
	Fajr     float64
	Sunrise  float64
	Dhuhr    float64
	Asr      float64
	Sunset   float64
	Maghrib  float64
	Isha     float64
	Midnight float64
}

type engine struct {
	lat    float64
	jdate  float64
	tzAdj  float64
	method Method
	asr    float64
	rule   string
}

// ComputeDay computes the timetable for the calendar date of date at loc.
func ComputeDay(date time.Time, loc Location, p Params) (Times, error) {
	method, err := MethodByName(p.Method)
	if err != nil {
		return Times{}, err
	}
	factor, err := SchoolFactor(p.School)
	if err != nil {
		return Times{}, err
	}
	rule, err := NormalizeHighLatRule(p.HighLatRule)
	if err != nil {
		return Times{}, err
	}

	y, m, d := date.Date()
	e := &engine{
		lat:    loc.Latitude,
		jdate:  julian(y, int(m), d) - loc.Longitude/(15*24),
		tzAdj:  float64(loc.TzOffsetMin)/60 - loc.Longitude/15,
		method: method,
		asr:    factor,
		rule:   rule,
	}
	return e.compute(), nil
}

func (e *engine) compute() Times {
	// Seed with nominal day fractions, then refine once against the
	// actual solar position.
	t := Times{Fajr: 5, Sunrise: 6, Dhuhr: 12, Asr: 13, Sunset: 18, Maghrib: 18, Isha: 18}
	t = Times{
		Fajr:    e.sunAngleTime(e.method.FajrAngle, t.Fajr/24, true),
		Sunrise: e.sunAngleTime(riseSetAngle, t.Sunrise/24, true),
		Dhuhr:   e.midDay(t.Dhuhr / 24),
		Asr:     e.asrTime(e.asr, t.Asr/24),
		Sunset:  e.sunAngleTime(riseSetAngle, t.Sunset/24, false),
		Maghrib: e.sunAngleTime(e.method.MaghribAngle, t.Maghrib/24, false),
		Isha:    e.sunAngleTime(e.method.IshaAngle, t.Isha/24, false),
	}
	return e.adjust(t)
}

func (e *engine) adjust(t Times) Times {
	t.Fajr += e.tzAdj
	t.Sunrise += e.tzAdj
	t.Dhuhr += e.tzAdj
	t.Asr += e.tzAdj
	t.Sunset += e.tzAdj
	t.Maghrib += e.tzAdj
	t.Isha += e.tzAdj

	if e.rule != HighLatNone {
		t = e.adjustHighLats(t)
	}
	if e.method.MaghribAngle == 0 {
		t.Maghrib = t.Sunset + e.method.MaghribMinutes/60
	}
	if e.method.IshaAngle == 0 {
		t.Isha = t.Maghrib + e.method.IshaMinutes/60
	}

	if e.method.Midnight == MidnightJafari {
		t.Midnight = t.Sunset + timeDiff(t.Sunset, t.Fajr)/2
	} else {
		t.Midnight = t.Sunset + timeDiff(t.Sunset, t.Sunrise)/2
	}
	return t
}

// adjustHighLats clamps fajr, isha and maghrib into the chosen portion of
// the night when twilight never reaches the method's angle.
func (e *engine) adjustHighLats(t Times) Times {
	night := timeDiff(t.Sunset, t.Sunrise)
	t.Fajr = e.adjustHLTime(t.Fajr, t.Sunrise, e.method.FajrAngle, night, true)
	t.Isha = e.adjustHLTime(t.Isha, t.Sunset, e.method.IshaAngle, night, false)
	t.Maghrib = e.adjustHLTime(t.Maghrib, t.Sunset, e.method.MaghribAngle, night, false)
	return t
}

func (e *engine) adjustHLTime(t, base, angle, night float64, ccw bool) float64 {
	portion := e.nightPortion(angle, night)
	diff := timeDiff(base, t)
	if ccw {
		diff = timeDiff(t, base)
	}
	if math.IsNaN(t) || diff > portion {
		if ccw {
			return base - portion
		}
		return base + portion
	}
	return t
}

func (e *engine) nightPortion(angle, night float64) float64 {
	portion := 1.0 / 2
	switch e.rule {
	case HighLatAngle:
		portion = angle / 60
	case HighLatOneSeventh:
		portion = 1.0 / 7
	}
	return portion * night
}

// midDay returns solar noon (in UTC-less local solar hours) near the
// given day fraction.
func (e *engine) midDay(frac float64) float64 {
	_, eqt := sunPosition(e.jdate + frac)
	return fixHour(12 - eqt)
}

// sunAngleTime returns the time at which the sun stands angle degrees
// below the horizon. ccw selects the morning crossing. The result is NaN
// when the sun never reaches the angle that day.
func (e *engine) sunAngleTime(angle, frac float64, ccw bool) float64 {
	decl, _ := sunPosition(e.jdate + frac)
	noon := e.midDay(frac)
	ratio := (-dsin(angle) - dsin(decl)*dsin(e.lat)) /
		(dcos(decl) * dcos(e.lat))
	hourAngle := dacos(ratio) / 15 // NaN when |ratio| > 1
	if ccw {
		return noon - hourAngle
	}
	return noon + hourAngle
}

// asrTime returns the afternoon time at which an object's shadow equals
// factor times its length plus its noon shadow.
func (e *engine) asrTime(factor, frac float64) float64 {
	decl, _ := sunPosition(e.jdate + frac)
	angle := -dacot(factor + dtan(math.Abs(e.lat-decl)))
	return e.sunAngleTime(angle, frac, false)
}

// sunPosition returns the sun's declination in degrees and the equation
// of time in hours for the given Julian date (low-precision ephemeris).
func sunPosition(jd float64) (decl, eqt float64) {
	d := jd - 2451545.0
	g := fixAngle(357.529 + 0.98560028*d)
	q := fixAngle(280.459 + 0.98564736*d)
	l := fixAngle(q + 1.915*dsin(g) + 0.020*dsin(2*g))
	e := 23.439 - 0.00000036*d

	ra := datan2(dcos(e)*dsin(l), dcos(l)) / 15
	decl = dasin(dsin(e) * dsin(l))
	eqt = q/15 - fixHour(ra)
	return decl, eqt
}

// julian converts a Gregorian calendar date to the Julian date at 00:00 UT.
func julian(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(float64(year)+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

func timeDiff(t1, t2 float64) float64 { return fixHour(t2 - t1) }

func fixAngle(a float64) float64 { return fix(a, 360) }
func fixHour(h float64) float64  { return fix(h, 24) }

func fix(a, b float64) float64 {
	a = a - b*math.Floor(a/b)
	if a < 0 {
		return a + b
	}
	return a
}

func dsin(d float64) float64      { return math.Sin(d * math.Pi / 180) }
func dcos(d float64) float64      { return math.Cos(d * math.Pi / 180) }
func dtan(d float64) float64      { return math.Tan(d * math.Pi / 180) }
func dasin(x float64) float64     { return math.Asin(x) * 180 / math.Pi }
func dacos(x float64) float64     { return math.Acos(x) * 180 / math.Pi }
func dacot(x float64) float64     { return math.Atan2(1, x) * 180 / math.Pi }
func datan2(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }
