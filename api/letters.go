package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/careerforge/backend/internal/letters"
	"github.com/careerforge/backend/pkg/llm"
)

type LettersHandler struct {
	svc *letters.Service
}

// NewLettersHandler accepts a nil service; generation then reports the
// feature as unavailable instead of panicking.
func NewLettersHandler(svc *letters.Service) *LettersHandler {
	return &LettersHandler{svc: svc}
}

func (h *LettersHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		writeError(w, "Cover letter generation is not configured", http.StatusServiceUnavailable)
		return
	}

	var req letters.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.PositionID == "" {
		http.Error(w, "position_id is required", http.StatusBadRequest)
		return
	}

	letter, err := h.svc.Generate(r.Context(), UserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, llm.ErrCircuitOpen) {
			writeError(w, "Cover letter generation is temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		logger.Error("cover letter generation failed", "err", err)
		writeError(w, "Failed to generate cover letter", http.StatusBadGateway)
		return
	}

	writeJSON(w, letter, http.StatusOK)
}
