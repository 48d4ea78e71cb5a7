package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/careerforge/backend/internal/stage"
	"github.com/careerforge/backend/internal/tracking"
)

type TrackedHandler struct {
	svc *tracking.Service
}

func NewTrackedHandler(svc *tracking.Service) *TrackedHandler {
	return &TrackedHandler{svc: svc}
}

// writeTrackingError maps tracking/stage errors onto status codes: stage
// rule violations are 422, a duplicate pair is 409, missing records and
// unknown positions are 404, everything else 500.
func writeTrackingError(w http.ResponseWriter, err error) {
	var verr *stage.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, verr.Message, http.StatusUnprocessableEntity)
	case errors.Is(err, tracking.ErrAlreadyTracked), errors.Is(err, tracking.ErrConcurrentUpdate):
		writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, tracking.ErrNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	default:
		logger.Error("tracked application request failed", "err", err)
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *TrackedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in tracking.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if in.PositionID == "" {
		http.Error(w, "position_id is required", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Create(r.Context(), UserID(r.Context()), in)
	if err != nil {
		writeTrackingError(w, err)
		return
	}

	writeJSON(w, app, http.StatusCreated)
}

func (h *TrackedHandler) Get(w http.ResponseWriter, r *http.Request) {
	positionID := muxVar(r, "position_id")

	app, err := h.svc.Get(r.Context(), UserID(r.Context()), positionID)
	if err != nil {
		writeTrackingError(w, err)
		return
	}

	writeJSON(w, app, http.StatusOK)
}

func (h *TrackedHandler) Update(w http.ResponseWriter, r *http.Request) {
	positionID := muxVar(r, "position_id")

	var patch tracking.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Update(r.Context(), UserID(r.Context()), positionID, patch)
	if err != nil {
		writeTrackingError(w, err)
		return
	}

	writeJSON(w, app, http.StatusOK)
}

func (h *TrackedHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 0
	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v >= 0 {
			page = v
		}
	}
	limit := 0
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	apps, err := h.svc.List(r.Context(), UserID(r.Context()), page, limit)
	if err != nil {
		writeTrackingError(w, err)
		return
	}

	writeJSON(w, apps, http.StatusOK)
}

func (h *TrackedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	positionID := muxVar(r, "position_id")

	if err := h.svc.Delete(r.Context(), UserID(r.Context()), positionID); err != nil {
		writeTrackingError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
