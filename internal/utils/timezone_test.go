package utils

import (
	"testing"
	"time"
)

func TestLocationOrUTC(t *testing.T) {
	cases := []struct {
		name     string
		tz       string
		expected string
	}{
		{name: "known zone", tz: "Europe/Istanbul", expected: "Europe/Istanbul"},
		{name: "unknown zone", tz: "Mars/Olympus", expected: "UTC"},
		{name: "empty", tz: "", expected: "UTC"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LocationOrUTC(tc.tz)
			if tc.expected == "UTC" {
				if got != time.UTC {
					t.Fatalf("expected UTC fallback, got %v", got)
				}
				return
			}
			if got.String() != tc.expected {
				t.Fatalf("expected %s, got %v", tc.expected, got)
			}
		})
	}
}
