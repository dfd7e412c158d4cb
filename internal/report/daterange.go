package report

import "time"

// Interval is a half-open [Start, End) instant range. End is exclusive so
// a record stamped exactly on the boundary is never counted twice by
// adjacent reports.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// BuildRange turns a ReportingRequest into a concrete instant interval.
//
// Daily mode covers [midnight, next midnight) of DailyDate, or
// [StartTime, EndTime) of that day when a time window is set; a window
// whose end does not land after its start spans into the next calendar day
// (20:00-04:00 night shifts). Range mode covers StartDate through EndDate
// inclusive, or the literal StartDate@StartTime .. EndDate@EndTime when
// times are given.
//
// BuildRange does not validate. Unparseable dates and inverted ranges
// produce an interval that simply matches nothing; rejecting bad input is
// the caller's job.
func BuildRange(req ReportingRequest, loc *time.Location) Interval {
	if loc == nil {
		loc = time.Local
	}
	withTimes := req.StartTime != "" && req.EndTime != ""

	switch req.Mode {
	case ModeDaily:
		day, ok := parseDay(req.DailyDate, loc)
		if !ok {
			return Interval{}
		}
		if !withTimes {
			return Interval{Start: day, End: day.AddDate(0, 0, 1)}
		}
		start, okStart := atClock(day, req.StartTime, loc)
		end, okEnd := atClock(day, req.EndTime, loc)
		if !okStart || !okEnd {
			return Interval{}
		}
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		return Interval{Start: start, End: end}

	case ModeRange:
		startDay, okStart := parseDay(req.StartDate, loc)
		endDay, okEnd := parseDay(req.EndDate, loc)
		if !okStart || !okEnd {
			return Interval{}
		}
		if !withTimes {
			return Interval{Start: startDay, End: endDay.AddDate(0, 0, 1)}
		}
		// Taken literally: range mode trusts the caller's day ordering,
		// there is no overnight auto-advance here.
		start, okStart := atClock(startDay, req.StartTime, loc)
		end, okEnd := atClock(endDay, req.EndTime, loc)
		if !okStart || !okEnd {
			return Interval{}
		}
		return Interval{Start: start, End: end}

	default:
		return Interval{}
	}
}

func parseDay(value string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(dayLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func atClock(day time.Time, clock string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(clockLayout, clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
}
