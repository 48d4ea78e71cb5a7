package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/careerforge/backend/internal/cache"
	"github.com/careerforge/backend/pkg/models"
	"github.com/careerforge/backend/pkg/repository"
)

type PositionsHandler struct {
	positionRepo repository.PositionRepo
	orgRepo      repository.OrganizationRepo
	cache        *cache.Cache
}

func NewPositionsHandler(pr repository.PositionRepo, or repository.OrganizationRepo, c *cache.Cache) *PositionsHandler {
	return &PositionsHandler{positionRepo: pr, orgRepo: or, cache: c}
}

func (h *PositionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var pos models.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pos.Title = strings.TrimSpace(pos.Title)
	if pos.Title == "" || pos.JobCategory == "" || pos.PositionType == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	userID := UserID(ctx)

	// Listings hang off the recruiter's organization, which must exist first.
	org, err := h.orgRepo.GetOrganizationByOwner(ctx, userID)
	if err != nil {
		http.Error(w, "Error creating position", http.StatusInternalServerError)
		return
	}
	if org == nil {
		writeError(w, "Create an organization before posting positions", http.StatusBadRequest)
		return
	}

	pos.ID = uuid.NewString()
	pos.UserID = userID
	pos.OrganizationID = org.ID
	if err := h.positionRepo.CreatePosition(ctx, &pos); err != nil {
		http.Error(w, "Error creating position", http.StatusInternalServerError)
		return
	}

	h.cache.DeletePattern(ctx, "positions:*")
	writeJSON(w, pos, http.StatusCreated)
}

func (h *PositionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	pos, err := h.positionRepo.GetPositionByID(r.Context(), muxVar(r, "id"))
	if err != nil {
		http.Error(w, "Error fetching position", http.StatusInternalServerError)
		return
	}
	if pos == nil {
		writeError(w, "Resource not found", http.StatusNotFound)
		return
	}
	writeJSON(w, pos, http.StatusOK)
}

// List serves the public listing page. Results are cached per (page, limit)
// and every position write invalidates the whole positions:* keyspace.
func (h *PositionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q.Get("page"), q.Get("limit"))

	ctx := r.Context()
	key := cache.ListingKey(page, limit, "")

	var cached []models.Position
	if h.cache.Get(ctx, key, &cached) {
		writeJSON(w, cached, http.StatusOK)
		return
	}

	positions, err := h.positionRepo.ListPositions(ctx, limit, page*limit)
	if err != nil {
		http.Error(w, "Error listing positions", http.StatusInternalServerError)
		return
	}
	if positions == nil {
		positions = []models.Position{}
	}

	h.cache.Set(ctx, key, positions)
	writeJSON(w, positions, http.StatusOK)
}

// ListMine returns the authenticated recruiter's own listings, uncached.
func (h *PositionsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q.Get("page"), q.Get("limit"))

	positions, err := h.positionRepo.ListPositionsByOwner(r.Context(), UserID(r.Context()), limit, page*limit)
	if err != nil {
		http.Error(w, "Error listing positions", http.StatusInternalServerError)
		return
	}
	if positions == nil {
		positions = []models.Position{}
	}
	writeJSON(w, positions, http.StatusOK)
}

func (h *PositionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, err := h.positionRepo.GetPositionByID(ctx, muxVar(r, "id"))
	if err != nil {
		http.Error(w, "Error updating position", http.StatusInternalServerError)
		return
	}
	if existing == nil || existing.UserID != UserID(ctx) {
		writeError(w, "Resource not found", http.StatusNotFound)
		return
	}

	var pos models.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pos.ID = existing.ID
	pos.UserID = existing.UserID
	pos.OrganizationID = existing.OrganizationID
	pos.Created = existing.Created

	if err := h.positionRepo.UpdatePosition(ctx, &pos); err != nil {
		http.Error(w, "Error updating position", http.StatusInternalServerError)
		return
	}

	h.cache.DeletePattern(ctx, "positions:*")
	writeJSON(w, pos, http.StatusOK)
}

func (h *PositionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, err := h.positionRepo.GetPositionByID(ctx, muxVar(r, "id"))
	if err != nil {
		http.Error(w, "Error deleting position", http.StatusInternalServerError)
		return
	}
	if existing == nil || existing.UserID != UserID(ctx) {
		writeError(w, "Resource not found", http.StatusNotFound)
		return
	}

	if err := h.positionRepo.DeletePosition(ctx, existing.ID); err != nil {
		http.Error(w, "Error deleting position", http.StatusInternalServerError)
		return
	}

	h.cache.DeletePattern(ctx, "positions:*")
	w.WriteHeader(http.StatusNoContent)
}

func pageParams(pageStr, limitStr string) (page, limit int) {
	page, limit = 0, 20
	if v, err := strconv.Atoi(pageStr); err == nil && v >= 0 {
		page = v
	}
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
