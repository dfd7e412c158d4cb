package report

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	dayLayout        = "2006-01-02"
	clockLayout      = "15:04"
	sqlStyleLayout   = "2006-01-02T15:04:05"
	shortStyleLayout = "2006-01-02T15:04"
)

// NormalizedDate is the canonical form of a raw order date: the calendar
// day as "2006-01-02" plus a comparable instant. The zero value marks
// input that could not be parsed; such records are excluded from every
// date-bounded result rather than matched optimistically.
type NormalizedDate struct {
	CalendarDate string
	Instant      *time.Time
}

// Normalize converts any of the date shapes the POS clients produce into a
// NormalizedDate. It never fails loudly: malformed input yields the zero
// value. loc interprets wall-clock strings; nil means time.Local.
func Normalize(raw any, loc *time.Location) NormalizedDate {
	if loc == nil {
		loc = time.Local
	}

	switch v := raw.(type) {
	case time.Time:
		return fromInstant(v, loc)
	case *time.Time:
		if v == nil {
			return NormalizedDate{}
		}
		return fromInstant(*v, loc)
	case pgtype.Timestamptz:
		if !v.Valid {
			return NormalizedDate{}
		}
		return fromInstant(v.Time, loc)
	case pgtype.Timestamp:
		if !v.Valid {
			return NormalizedDate{}
		}
		return fromInstant(v.Time, loc)
	case pgtype.Date:
		if !v.Valid {
			return NormalizedDate{}
		}
		return fromInstant(v.Time, loc)
	case string:
		return normalizeString(v, loc)
	default:
		return NormalizedDate{}
	}
}

func fromInstant(t time.Time, loc *time.Location) NormalizedDate {
	if t.IsZero() {
		return NormalizedDate{}
	}
	local := t.In(loc)
	return NormalizedDate{CalendarDate: local.Format(dayLayout), Instant: &local}
}

func normalizeString(s string, loc *time.Location) NormalizedDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return NormalizedDate{}
	}

	if strings.Contains(s, "T") {
		return normalizeISOStyle(s, loc)
	}

	if day, clock, found := strings.Cut(s, " "); found {
		// SQL style "2006-01-02 15:04:05": first token is the calendar
		// day, the rest parses like an ISO string.
		return normalizeISOStyle(day+"T"+clock, loc)
	}

	if t, err := time.ParseInLocation(dayLayout, s, loc); err == nil {
		return NormalizedDate{CalendarDate: s, Instant: &t}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return fromInstant(t, loc)
	}

	return NormalizedDate{}
}

func normalizeISOStyle(s string, loc *time.Location) NormalizedDate {
	day, _, _ := strings.Cut(s, "T")

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NormalizedDate{CalendarDate: day, Instant: &t}
	}
	if t, err := time.ParseInLocation(sqlStyleLayout, s, loc); err == nil {
		return NormalizedDate{CalendarDate: day, Instant: &t}
	}
	if t, err := time.ParseInLocation(shortStyleLayout, s, loc); err == nil {
		return NormalizedDate{CalendarDate: day, Instant: &t}
	}
	// Unparseable clock part: keep the calendar day at midnight when it is
	// at least a valid date on its own.
	if t, err := time.ParseInLocation(dayLayout, day, loc); err == nil {
		return NormalizedDate{CalendarDate: day, Instant: &t}
	}
	return NormalizedDate{}
}
