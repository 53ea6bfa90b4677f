package leaderboarddomain

import (
	"errors"
	"time"
)

// ErrUnknownPeriod is returned for a period key the resolver does not recognise.
var ErrUnknownPeriod = errors.New("unknown leaderboard period")

const (
	PeriodCurrent  = "current"
	PeriodPrevious = "previous"
)

// Period is a half-open UTC window [Start, End).
type Period struct {
	Key   string
	Start time.Time
	End   time.Time
}

// PeriodResolver turns a period key into a concrete window.
type PeriodResolver struct {
	// Fixed, when non-zero, pins the "current" window.
	Fixed Period
}

// Resolve maps key to a window relative to now. An empty key means current.
func (r PeriodResolver) Resolve(key string, now time.Time) (Period, error) {
	if key == "" {
		key = PeriodCurrent
	}

	var start time.Time
	switch key {
	case PeriodCurrent:
		if !r.Fixed.Start.IsZero() {
			return Period{Key: key, Start: r.Fixed.Start.UTC(), End: r.Fixed.End.UTC()}, nil
		}
		start = monthStart(now)
	case PeriodPrevious:
		if !r.Fixed.Start.IsZero() {
			length := r.Fixed.End.Sub(r.Fixed.Start)
			return Period{Key: key, Start: r.Fixed.Start.Add(-length).UTC(), End: r.Fixed.Start.UTC()}, nil
		}
		start = monthStart(now).AddDate(0, -1, 0)
	default:
		return Period{}, ErrUnknownPeriod
	}
	return Period{Key: key, Start: start, End: start.AddDate(0, 1, 0)}, nil
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
