package repository

import (
	"context"
	"errors"

	"github.com/careerforge/backend/pkg/models"
)

// ErrStaleRecord is returned by guarded updates when the row changed between
// the caller's read and its write.
var ErrStaleRecord = errors.New("record was modified concurrently")

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, platform, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
}

type OrganizationRepo interface {
	CreateOrganization(ctx context.Context, o *models.Organization) error
	GetOrganizationByID(ctx context.Context, id string) (*models.Organization, error)
	GetOrganizationByOwner(ctx context.Context, userID string) (*models.Organization, error)
	UpdateOrganization(ctx context.Context, o *models.Organization) error
}

type PositionRepo interface {
	CreatePosition(ctx context.Context, p *models.Position) error
	GetPositionByID(ctx context.Context, id string) (*models.Position, error)
	// GetPositionInfo joins the position with its organization for display.
	// Returns nil when the position does not exist.
	GetPositionInfo(ctx context.Context, id string) (*models.PositionInfo, error)
	ListPositions(ctx context.Context, limit, offset int) ([]models.Position, error)
	ListPositionsByOwner(ctx context.Context, userID string, limit, offset int) ([]models.Position, error)
	UpdatePosition(ctx context.Context, p *models.Position) error
	DeletePosition(ctx context.Context, id string) error
}

type TrackedApplicationRepo interface {
	CreateTrackedApplication(ctx context.Context, a *models.TrackedApplication) error
	// GetTrackedApplication is scoped to the owning user; it returns nil for
	// a missing row and for a row owned by another user.
	GetTrackedApplication(ctx context.Context, userID, positionID string) (*models.TrackedApplication, error)
	ListTrackedApplications(ctx context.Context, userID string, limit, offset int) ([]models.TrackedApplication, error)
	UpdateTrackedApplication(ctx context.Context, a *models.TrackedApplication) error
	DeleteTrackedApplication(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	CreateMilestone(ctx context.Context, m *models.Milestone) error
	GetMilestoneByID(ctx context.Context, userID, id string) (*models.Milestone, error)
	ListMilestonesByUser(ctx context.Context, userID string) ([]models.Milestone, error)
	UpdateMilestone(ctx context.Context, m *models.Milestone) error
	DeleteMilestone(ctx context.Context, id string) error
}

type SchemaRepo interface {
	GetSchemaByVersion(ctx context.Context, version string) (*models.Schema, error)
}
