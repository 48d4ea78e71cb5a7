package mock

import (
	"context"
	"sort"

	"github.com/careerforge/backend/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo     *mockUserRepo
	OrgRepo      *mockOrganizationRepo
	PositionRepo *mockPositionRepo
	SchemaRepo   *mockSchemaRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:     &mockUserRepo{},
		OrgRepo:      &mockOrganizationRepo{},
		PositionRepo: &mockPositionRepo{},
		SchemaRepo:   &mockSchemaRepo{},
	}
}

type mockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	cp := *u
	m.Stored = &cp
	return nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, platform, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Platform == platform && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	m.Stored = u
	return nil
}

type mockOrganizationRepo struct {
	Stored *models.Organization
}

func (m *mockOrganizationRepo) CreateOrganization(ctx context.Context, o *models.Organization) error {
	cp := *o
	m.Stored = &cp
	return nil
}

func (m *mockOrganizationRepo) GetOrganizationByID(ctx context.Context, id string) (*models.Organization, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockOrganizationRepo) GetOrganizationByOwner(ctx context.Context, userID string) (*models.Organization, error) {
	if m.Stored != nil && m.Stored.CreatedBy == userID {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockOrganizationRepo) UpdateOrganization(ctx context.Context, o *models.Organization) error {
	m.Stored = o
	return nil
}

type mockPositionRepo struct {
	Positions map[string]*models.Position
	Infos     map[string]*models.PositionInfo
}

func (m *mockPositionRepo) CreatePosition(ctx context.Context, p *models.Position) error {
	if m.Positions == nil {
		m.Positions = make(map[string]*models.Position)
	}
	cp := *p
	m.Positions[p.ID] = &cp
	return nil
}

func (m *mockPositionRepo) GetPositionByID(ctx context.Context, id string) (*models.Position, error) {
	return m.Positions[id], nil
}

func (m *mockPositionRepo) GetPositionInfo(ctx context.Context, id string) (*models.PositionInfo, error) {
	if info, ok := m.Infos[id]; ok {
		return info, nil
	}
	p, ok := m.Positions[id]
	if !ok {
		return nil, nil
	}
	return &models.PositionInfo{ID: p.ID, Title: p.Title, City: p.City, Country: p.Country}, nil
}

func (m *mockPositionRepo) ListPositions(ctx context.Context, limit, offset int) ([]models.Position, error) {
	out := make([]models.Position, 0, len(m.Positions))
	for _, p := range m.Positions {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created > out[j].Created })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockPositionRepo) ListPositionsByOwner(ctx context.Context, userID string, limit, offset int) ([]models.Position, error) {
	all, err := m.ListPositions(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]models.Position, 0, len(all))
	for _, p := range all {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPositionRepo) UpdatePosition(ctx context.Context, p *models.Position) error {
	cp := *p
	m.Positions[p.ID] = &cp
	return nil
}

func (m *mockPositionRepo) DeletePosition(ctx context.Context, id string) error {
	delete(m.Positions, id)
	return nil
}

type mockSchemaRepo struct {
	Stored *models.Schema
}

func (m *mockSchemaRepo) GetSchemaByVersion(ctx context.Context, version string) (*models.Schema, error) {
	if m.Stored != nil && m.Stored.Version == version {
		return m.Stored, nil
	}
	return nil, nil
}
