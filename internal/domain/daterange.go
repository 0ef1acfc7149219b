package domain

import "time"

// DisplayDateLayout is the layout used by FormatRange for each date.
const DisplayDateLayout = "02 Jan 2006"

// DateRange is the start/end pair picked on the calendar.
// Either bound is nil until the user has made two picks; when both are set
// Start is never after End.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both bounds have been picked.
func (r DateRange) Complete() bool {
	return r.Start != nil && r.End != nil
}

// SelectDay applies one calendar pick to current and returns the new range.
// Picks may arrive in any temporal order; the result is never inverted.
// A third pick after a completed range starts a new range.
func SelectDay(current DateRange, picked time.Time) DateRange {
	day := picked
	switch {
	case current.Start == nil:
		return DateRange{Start: &day}
	case current.End == nil:
		start := *current.Start
		if day.Before(start) {
			return DateRange{Start: &day, End: &start}
		}
		return DateRange{Start: &start, End: &day}
	default:
		return DateRange{Start: &day}
	}
}

// FormatRange renders r for display: empty before the first pick, a single
// date after it, and "<start> - <end>" once complete.
func FormatRange(r DateRange) string {
	if r.Start == nil {
		return ""
	}
	if r.End == nil {
		return r.Start.Format(DisplayDateLayout)
	}
	return r.Start.Format(DisplayDateLayout) + " - " + r.End.Format(DisplayDateLayout)
}

// Day truncates t to midnight of its calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
