package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/gorilla/mux"
)

// muxVar reads a path variable set by the router.
func muxVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError sends a JSON error body, for endpoints whose error messages are
// part of the contract.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, errorResponse{Error: msg}, status)
}
