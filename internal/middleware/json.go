package middleware

import (
	"encoding/json"
	"net/http"

	"stream-api/internal/model"
)

func jsonEncode(w http.ResponseWriter, value any) error {
	return json.NewEncoder(w).Encode(value)
}

// writeFailure classifies err through the shared taxonomy and writes the
// envelope. Middleware responses and handler responses go through the same
// classification, so a failure looks identical no matter where it surfaced.
func writeFailure(w http.ResponseWriter, err error) {
	result := model.ClassifyError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.Code)
	_ = jsonEncode(w, result)
}
