package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"stream-api/internal/model"
)

// Every endpoint answers with the Result envelope and HTTP status 200 on
// success; the envelope code mirrors the HTTP status.

func writeSuccess(w http.ResponseWriter, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(model.Success(http.StatusOK, message, data))
}

func writeError(w http.ResponseWriter, err error) {
	result := model.ClassifyError(err)
	if result.Code >= http.StatusInternalServerError {
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.Code)
	_ = json.NewEncoder(w).Encode(result)
}
