package response

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data any) {
	SuccessWith(w, data, nil)
}

// SuccessWith writes the success envelope with extra top-level fields next
// to "data", e.g. the echoed request and the computed date range.
func SuccessWith(w http.ResponseWriter, data any, meta map[string]any) {
	payload := map[string]any{
		"success": true,
		"data":    data,
	}
	for key, value := range meta {
		payload[key] = value
	}
	JSON(w, http.StatusOK, payload)
}

func Error(w http.ResponseWriter, status int, code string, message string) {
	JSON(w, status, map[string]any{
		"success": false,
		"error":   code,
		"message": message,
	})
}
