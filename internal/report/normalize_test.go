package report

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestNormalizeRawForms(t *testing.T) {
	loc := time.UTC
	native := time.Date(2025, 8, 4, 14, 30, 0, 0, loc)

	cases := []struct {
		name         string
		raw          any
		calendarDate string
		instant      string
	}{
		{
			name:         "native time",
			raw:          native,
			calendarDate: "2025-08-04",
			instant:      "2025-08-04T14:30:00",
		},
		{
			name:         "store timestamp",
			raw:          pgtype.Timestamptz{Time: native, Valid: true},
			calendarDate: "2025-08-04",
			instant:      "2025-08-04T14:30:00",
		},
		{
			name:         "iso string with offset",
			raw:          "2025-08-04T14:30:00Z",
			calendarDate: "2025-08-04",
			instant:      "2025-08-04T14:30:00",
		},
		{
			name:         "iso string without offset",
			raw:          "2025-08-04T14:30:00",
			calendarDate: "2025-08-04",
			instant:      "2025-08-04T14:30:00",
		},
		{
			name:         "sql style string",
			raw:          "2025-08-04 14:30:00",
			calendarDate: "2025-08-04",
			instant:      "2025-08-04T14:30:00",
		},
		{
			name:         "bare date",
			raw:          "2025-08-04",
			calendarDate: "2025-08-04",
			instant:      "2025-08-04T00:00:00",
		},
		{
			name:         "iso with broken clock keeps the day",
			raw:          "2025-08-04Txx:yy",
			calendarDate: "2025-08-04",
			instant:      "2025-08-04T00:00:00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw, loc)
			if got.Instant == nil {
				t.Fatalf("expected a valid instant")
			}
			if got.CalendarDate != tc.calendarDate {
				t.Fatalf("expected calendar date %s, got %s", tc.calendarDate, got.CalendarDate)
			}
			if formatted := got.Instant.In(loc).Format(sqlStyleLayout); formatted != tc.instant {
				t.Fatalf("expected instant %s, got %s", tc.instant, formatted)
			}
		})
	}
}

func TestNormalizeFailsClosed(t *testing.T) {
	loc := time.UTC

	cases := []struct {
		name string
		raw  any
	}{
		{name: "nil", raw: nil},
		{name: "empty string", raw: ""},
		{name: "garbage", raw: "not a date"},
		{name: "invalid store timestamp", raw: pgtype.Timestamptz{}},
		{name: "nil time pointer", raw: (*time.Time)(nil)},
		{name: "unsupported type", raw: 42},
		{name: "garbage with T", raw: "xxTyy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw, loc)
			if got.Instant != nil || got.CalendarDate != "" {
				t.Fatalf("expected zero result, got %+v", got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	loc := time.UTC
	inputs := []any{
		"2025-08-04T14:30:00Z",
		"2025-08-04 14:30:00",
		"2025-08-04",
		time.Date(2025, 8, 4, 9, 0, 0, 0, loc),
	}

	for _, raw := range inputs {
		first := Normalize(raw, loc)
		if first.Instant == nil {
			t.Fatalf("expected %v to normalize", raw)
		}
		second := Normalize(first.CalendarDate, loc)
		if second.CalendarDate != first.CalendarDate {
			t.Fatalf("re-normalizing %v changed the calendar date: %s -> %s", raw, first.CalendarDate, second.CalendarDate)
		}
	}
}
