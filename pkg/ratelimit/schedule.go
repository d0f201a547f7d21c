// Package ratelimit models the Fusion API daily quota schedule.
// The upstream resets request quota at midnight in a fixed civil
// timezone rather than using a sliding window, so the correct backoff
// for a 429 is to wait out the remainder of the quota day.
package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for quota wait tracking.
var (
	quotaSleepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_quota_sleeps_total",
		Help: "Total number of quota-reset waits triggered by 429 responses",
	})

	quotaSleepSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fusion_quota_sleep_seconds",
		Help:    "Duration of quota-reset waits in seconds",
		Buckets: []float64{60, 600, 3600, 7200, 14400, 28800, 57600, 86400},
	})
)

// Defaults for the upstream quota schedule.
const (
	// DefaultZone is the civil timezone in which the upstream resets
	// its daily quota, regardless of the caller's own timezone.
	DefaultZone = "America/Los_Angeles"

	// DefaultMargin is added on top of the computed wait so the retry
	// lands safely after the reset instant.
	DefaultMargin = 60 * time.Second
)

// Schedule describes when the upstream daily quota resets.
// The zero value is not usable; construct via DefaultSchedule or set
// Location explicitly.
type Schedule struct {
	// Location is the reference timezone of the reset boundary.
	Location *time.Location

	// Margin is the safety margin added to every computed wait.
	Margin time.Duration
}

// DefaultSchedule returns the upstream's schedule: midnight in the
// reference timezone plus a 60 second margin.
func DefaultSchedule() Schedule {
	loc, err := time.LoadLocation(DefaultZone)
	if err != nil {
		// No tzdata on this system. UTC keeps the wait bounded to at
		// most one day, which is the property callers rely on.
		loc = time.UTC
	}
	return Schedule{
		Location: loc,
		Margin:   DefaultMargin,
	}
}

// NextReset returns the next local-midnight boundary after now in the
// schedule's timezone. A now exactly on the boundary yields the
// following day's boundary.
func (s Schedule) NextReset(now time.Time) time.Time {
	local := now.In(s.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.Location)
	return midnight.AddDate(0, 0, 1)
}

// WaitUntilReset returns how long to sleep from now until the quota
// refreshes, including the safety margin, and records the wait in the
// quota metrics.
func (s Schedule) WaitUntilReset(now time.Time) time.Duration {
	wait := s.NextReset(now).Sub(now) + s.Margin

	quotaSleepsTotal.Inc()
	quotaSleepSeconds.Observe(wait.Seconds())

	return wait
}
