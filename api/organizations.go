package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/careerforge/backend/pkg/models"
	"github.com/careerforge/backend/pkg/repository"
)

type OrganizationsHandler struct {
	orgRepo repository.OrganizationRepo
}

func NewOrganizationsHandler(or repository.OrganizationRepo) *OrganizationsHandler {
	return &OrganizationsHandler{orgRepo: or}
}

func (h *OrganizationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var org models.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	org.Name = strings.TrimSpace(org.Name)
	if org.Name == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	userID := UserID(ctx)

	// One organization per recruiter account.
	existing, err := h.orgRepo.GetOrganizationByOwner(ctx, userID)
	if err != nil {
		http.Error(w, "Error creating organization", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "You already have an organization", http.StatusConflict)
		return
	}

	org.ID = uuid.NewString()
	org.CreatedBy = userID
	if err := h.orgRepo.CreateOrganization(ctx, &org); err != nil {
		http.Error(w, "Error creating organization", http.StatusInternalServerError)
		return
	}

	writeJSON(w, org, http.StatusCreated)
}

func (h *OrganizationsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgRepo.GetOrganizationByOwner(r.Context(), UserID(r.Context()))
	if err != nil {
		http.Error(w, "Error fetching organization", http.StatusInternalServerError)
		return
	}
	if org == nil {
		writeError(w, "Resource not found", http.StatusNotFound)
		return
	}
	writeJSON(w, org, http.StatusOK)
}

func (h *OrganizationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, err := h.orgRepo.GetOrganizationByOwner(ctx, UserID(ctx))
	if err != nil {
		http.Error(w, "Error updating organization", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		writeError(w, "Resource not found", http.StatusNotFound)
		return
	}

	var org models.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	org.ID = existing.ID
	org.CreatedBy = existing.CreatedBy
	org.Created = existing.Created

	if err := h.orgRepo.UpdateOrganization(ctx, &org); err != nil {
		http.Error(w, "Error updating organization", http.StatusInternalServerError)
		return
	}

	writeJSON(w, org, http.StatusOK)
}
