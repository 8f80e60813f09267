package analytics

import "time"

// Supported report range tokens.
const (
	Range7d  = "7d"
	Range30d = "30d"
	Range90d = "90d"
)

// Window is an inclusive time interval used to scope a report.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow maps a range token to a concrete window ending at now.
// Unknown or empty tokens fall back to the 30 day default rather than
// erroring; a bad query parameter should never break a report.
func ResolveWindow(token string, now time.Time) Window {
	days := 30
	switch token {
	case Range7d:
		days = 7
	case Range90d:
		days = 90
	case Range30d, "":
		days = 30
	}
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// Contains reports whether t falls inside the window. Both endpoints are
// inclusive, so a record stamped exactly at the window start or at now is in
// scope.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
