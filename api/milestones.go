package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/careerforge/backend/pkg/models"
	"github.com/careerforge/backend/pkg/repository"
)

type MilestonesHandler struct {
	milestoneRepo repository.MilestoneRepo
}

func NewMilestonesHandler(mr repository.MilestoneRepo) *MilestonesHandler {
	return &MilestonesHandler{milestoneRepo: mr}
}

func (h *MilestonesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var m models.Milestone
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	m.ID = uuid.NewString()
	m.UserID = UserID(r.Context())
	if err := h.milestoneRepo.CreateMilestone(r.Context(), &m); err != nil {
		http.Error(w, "Error creating milestone", http.StatusInternalServerError)
		return
	}

	writeJSON(w, m, http.StatusCreated)
}

func (h *MilestonesHandler) List(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.milestoneRepo.ListMilestonesByUser(r.Context(), UserID(r.Context()))
	if err != nil {
		http.Error(w, "Error listing milestones", http.StatusInternalServerError)
		return
	}
	if milestones == nil {
		milestones = []models.Milestone{}
	}
	writeJSON(w, milestones, http.StatusOK)
}

func (h *MilestonesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, err := h.milestoneRepo.GetMilestoneByID(ctx, UserID(ctx), muxVar(r, "id"))
	if err != nil {
		http.Error(w, "Error updating milestone", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		writeError(w, "Resource not found", http.StatusNotFound)
		return
	}

	var m models.Milestone
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	m.ID = existing.ID
	m.UserID = existing.UserID
	m.Created = existing.Created

	if err := h.milestoneRepo.UpdateMilestone(ctx, &m); err != nil {
		http.Error(w, "Error updating milestone", http.StatusInternalServerError)
		return
	}

	writeJSON(w, m, http.StatusOK)
}

func (h *MilestonesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, err := h.milestoneRepo.GetMilestoneByID(ctx, UserID(ctx), muxVar(r, "id"))
	if err != nil {
		http.Error(w, "Error deleting milestone", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		writeError(w, "Resource not found", http.StatusNotFound)
		return
	}

	if err := h.milestoneRepo.DeleteMilestone(ctx, existing.ID); err != nil {
		http.Error(w, "Error deleting milestone", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
