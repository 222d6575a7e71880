package prayer

import (
	"context"
	"time"

	"github.com/deenbuddy/minaret/internal/model"
)

// Provider computes or fetches one day of prayer times.
type Provider interface {
	DayTimes(ctx context.Context, date time.Time, loc Location, p Params) (model.DayTimes, error)
}

// LocalProvider runs the built-in solar engine.
type LocalProvider struct{}

func (LocalProvider) DayTimes(_ context.Context, date time.Time, loc Location, p Params) (model.DayTimes, error) {
	return BuildDayTimes(date, loc, p)
}

// NewProvider selects the timings source. "aladhan" proxies the public
// AlAdhan API; anything else computes locally.
func NewProvider(name, aladhanBaseURL string) Provider {
	if name == "aladhan" {
		return NewAladhanClient(aladhanBaseURL)
	}
	return LocalProvider{}
}
