package handlers

import (
	"net/http/httptest"
	"testing"

	"adisyon-report-service/internal/report"
)

func TestParseReportingRequest(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantErr bool
		mode    report.Mode
	}{
		{
			name: "daily",
			url:  "/api/reports/summary?mode=daily&date=2025-08-04",
			mode: report.ModeDaily,
		},
		{
			name: "daily with window",
			url:  "/api/reports/summary?mode=daily&date=2025-08-04&startTime=20:00&endTime=04:00",
			mode: report.ModeDaily,
		},
		{
			name: "range",
			url:  "/api/reports/summary?mode=range&startDate=2025-08-01&endDate=2025-08-07",
			mode: report.ModeRange,
		},
		{
			name:    "missing mode",
			url:     "/api/reports/summary?date=2025-08-04",
			wantErr: true,
		},
		{
			name:    "bad daily date",
			url:     "/api/reports/summary?mode=daily&date=04.08.2025",
			wantErr: true,
		},
		{
			name:    "inverted range",
			url:     "/api/reports/summary?mode=range&startDate=2025-08-07&endDate=2025-08-01",
			wantErr: true,
		},
		{
			name:    "lonely start time",
			url:     "/api/reports/summary?mode=daily&date=2025-08-04&startTime=20:00",
			wantErr: true,
		},
		{
			name:    "bad time format",
			url:     "/api/reports/summary?mode=daily&date=2025-08-04&startTime=8pm&endTime=04:00",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := ParseReportingRequest(httptest.NewRequest("GET", tc.url, nil))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Mode != tc.mode {
				t.Fatalf("expected mode %s, got %s", tc.mode, req.Mode)
			}
		})
	}
}
