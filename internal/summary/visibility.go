package summary

import "time"

// DefaultLeadTimeDays is how long before the event the couple gets to see
// the summary.
const DefaultLeadTimeDays = 4

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Gate decides when a summary is visible. Timestamps are truncated to
// calendar days in Location before they are compared.
type Gate struct {
	LeadTimeDays int
	Location     *time.Location
}

// NewGate returns a gate; a nil location means UTC.
func NewGate(leadTimeDays int, loc *time.Location) Gate {
	if loc == nil {
		loc = time.UTC
	}
	return Gate{LeadTimeDays: leadTimeDays, Location: loc}
}

// Today is the calendar day of now in the gate's location, expressed as
// midnight UTC.
func (g Gate) Today(now time.Time) time.Time {
	return civilDay(now.In(g.location()))
}

// DaysUntil counts whole calendar days from now to the event date. It is
// negative once the event has passed.
func (g Gate) DaysUntil(eventDate, now time.Time) int {
	return int(civilDay(eventDate).Sub(g.Today(now)).Hours() / 24)
}

// IsVisible reports whether the event is at most LeadTimeDays away. Once
// true for an event it stays true.
func (g Gate) IsVisible(eventDate, now time.Time) bool {
	return g.DaysUntil(eventDate, now) <= g.LeadTimeDays
}

// SweepWindow returns the date range of events a sweep should recompute:
// from today up to one day past the lead time.
func (g Gate) SweepWindow(now time.Time) (from, to time.Time) {
	from = g.Today(now)
	return from, from.AddDate(0, 0, g.LeadTimeDays+1)
}

func (g Gate) location() *time.Location {
	if g.Location == nil {
		return time.UTC
	}
	return g.Location
}

// civilDay keeps the year, month and day of t as seen in t's own location.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
