package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestSuccessWith(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWith(rec, map[string]any{"totalCount": 3}, map[string]any{"mode": "daily"})

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %s", ct)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if payload["success"] != true {
		t.Fatalf("expected success envelope, got %v", payload)
	}
	if payload["mode"] != "daily" {
		t.Fatalf("expected meta field next to data, got %v", payload)
	}
	data, ok := payload["data"].(map[string]any)
	if !ok || data["totalCount"] != float64(3) {
		t.Fatalf("unexpected data payload: %v", payload["data"])
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, 400, "VALIDATION_ERROR", "Invalid date")

	if rec.Code != 400 {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if payload["success"] != false || payload["error"] != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error envelope: %v", payload)
	}
}
