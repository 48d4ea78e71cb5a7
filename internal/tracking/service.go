// Package tracking is the record service for a candidate's tracked
// applications: one row per (user, position) pair owning a stage map plus
// free-text metadata. All stage validation happens here, before any write.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careerforge/backend/internal/stage"
	"github.com/careerforge/backend/pkg/models"
	"github.com/careerforge/backend/pkg/repository"
)

var (
	// ErrAlreadyTracked is returned when a (user, position) pair already has
	// a tracked application. Creating twice is a conflict, not an overwrite.
	ErrAlreadyTracked = errors.New("You have already applied for this job")

	// ErrNotFound covers both a missing record and a record owned by another
	// user, so callers cannot probe for other users' applications.
	ErrNotFound = errors.New("Resource not found")

	// ErrConcurrentUpdate is returned when the record changed between the
	// read and the guarded write of an update.
	ErrConcurrentUpdate = errors.New("The application was modified by another request")
)

const (
	defaultLimit = 20
	maxLimit     = 5000
)

type Service struct {
	apps      repository.TrackedApplicationRepo
	positions repository.PositionRepo
	logger    *slog.Logger
}

func NewService(apps repository.TrackedApplicationRepo, positions repository.PositionRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{apps: apps, positions: positions, logger: logger}
}

// CreateInput carries the caller-supplied fields for a new tracked
// application. Stage may be partial; base stages default to false.
type CreateInput struct {
	PositionID  string    `json:"position_id"`
	Activity    string    `json:"activity,omitempty"`
	Reaction    string    `json:"reaction,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Stage       stage.Map `json:"stage"`
	IsFavourite bool      `json:"is_favourite"`
}

// Patch carries a partial update. Nil pointer fields are left untouched; a
// nil Stage leaves the stored stage map byte-for-byte unchanged.
type Patch struct {
	Activity    *string   `json:"activity,omitempty"`
	Reaction    *string   `json:"reaction,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Stage       stage.Map `json:"stage,omitempty"`
	IsFavourite *bool     `json:"is_favourite,omitempty"`
}

// Create validates and persists a new tracked application, returning the
// stored record enriched with position display metadata.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*models.TrackedApplication, error) {
	existing, err := s.apps.GetTrackedApplication(ctx, userID, in.PositionID)
	if err != nil {
		return nil, fmt.Errorf("lookup tracked application: %w", err)
	}
	if existing != nil {
		s.logger.Warn("tracked application already exists",
			slog.String("user_id", userID), slog.String("position_id", in.PositionID))
		return nil, ErrAlreadyTracked
	}

	info, err := s.positions.GetPositionInfo(ctx, in.PositionID)
	if err != nil {
		return nil, fmt.Errorf("lookup position: %w", err)
	}
	if info == nil {
		return nil, ErrNotFound
	}

	m, err := stage.WithDefaults(in.Stage)
	if err != nil {
		return nil, err
	}
	if err := stage.ValidateFull(m); err != nil {
		return nil, err
	}
	s.warnMalformed(userID, m)

	app := &models.TrackedApplication{
		ID:          uuid.NewString(),
		UserID:      userID,
		PositionID:  in.PositionID,
		Activity:    in.Activity,
		Reaction:    in.Reaction,
		Notes:       in.Notes,
		Stage:       m,
		IsFavourite: in.IsFavourite,
	}
	if err := s.apps.CreateTrackedApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("create tracked application: %w", err)
	}

	app.Position = info
	return app, nil
}

// Update applies a partial update to an existing tracked application. A
// stage patch is merged over the stored map and the merged state validated;
// the other fields overwrite independently, each only when supplied.
func (s *Service) Update(ctx context.Context, userID, positionID string, patch Patch) (*models.TrackedApplication, error) {
	app, err := s.apps.GetTrackedApplication(ctx, userID, positionID)
	if err != nil {
		return nil, fmt.Errorf("lookup tracked application: %w", err)
	}
	if app == nil {
		return nil, ErrNotFound
	}

	if patch.Stage != nil {
		if err := stage.ValidatePatch(app.Stage, patch.Stage); err != nil {
			return nil, err
		}
		app.Stage = stage.Merge(app.Stage, patch.Stage)
		s.warnMalformed(userID, app.Stage)
	}
	if patch.Activity != nil {
		app.Activity = *patch.Activity
	}
	if patch.Reaction != nil {
		app.Reaction = *patch.Reaction
	}
	if patch.Notes != nil {
		app.Notes = *patch.Notes
	}
	if patch.IsFavourite != nil {
		app.IsFavourite = *patch.IsFavourite
	}

	if err := s.apps.UpdateTrackedApplication(ctx, app); err != nil {
		if errors.Is(err, repository.ErrStaleRecord) {
			return nil, ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("update tracked application: %w", err)
	}

	return s.enrich(ctx, app)
}

// Get returns the user's tracked application for a position.
func (s *Service) Get(ctx context.Context, userID, positionID string) (*models.TrackedApplication, error) {
	app, err := s.apps.GetTrackedApplication(ctx, userID, positionID)
	if err != nil {
		return nil, fmt.Errorf("lookup tracked application: %w", err)
	}
	if app == nil {
		return nil, ErrNotFound
	}
	return s.enrich(ctx, app)
}

// List returns the user's tracked applications sorted by creation time
// descending. page is zero-based; limit is clamped to [1, 5000].
func (s *Service) List(ctx context.Context, userID string, page, limit int) ([]models.TrackedApplication, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	apps, err := s.apps.ListTrackedApplications(ctx, userID, limit, page*limit)
	if err != nil {
		return nil, fmt.Errorf("list tracked applications: %w", err)
	}

	for i := range apps {
		if _, err := s.enrich(ctx, &apps[i]); err != nil {
			return nil, err
		}
	}
	if apps == nil {
		apps = []models.TrackedApplication{}
	}
	return apps, nil
}

// Delete removes the user's tracked application for a position.
func (s *Service) Delete(ctx context.Context, userID, positionID string) error {
	app, err := s.apps.GetTrackedApplication(ctx, userID, positionID)
	if err != nil {
		return fmt.Errorf("lookup tracked application: %w", err)
	}
	if app == nil {
		return ErrNotFound
	}
	if err := s.apps.DeleteTrackedApplication(ctx, app.ID); err != nil {
		return fmt.Errorf("delete tracked application: %w", err)
	}
	return nil
}

// warnMalformed flags interview keys with a non-numeric suffix. They are
// accepted and ordered after the numbered rounds, but they usually mean a
// client is writing bad keys.
func (s *Service) warnMalformed(userID string, m stage.Map) {
	if keys := stage.MalformedInterviewKeys(m); len(keys) > 0 {
		s.logger.Warn("stage map contains malformed interview keys",
			slog.String("user_id", userID), slog.Any("keys", keys))
	}
}

// enrich attaches position display metadata to a record. A missing position
// is logged, not fatal; the record is still returned.
func (s *Service) enrich(ctx context.Context, app *models.TrackedApplication) (*models.TrackedApplication, error) {
	info, err := s.positions.GetPositionInfo(ctx, app.PositionID)
	if err != nil {
		return nil, fmt.Errorf("lookup position info: %w", err)
	}
	if info == nil {
		s.logger.Warn("tracked application references missing position",
			slog.String("position_id", app.PositionID))
		return app, nil
	}
	app.Position = info
	return app, nil
}
