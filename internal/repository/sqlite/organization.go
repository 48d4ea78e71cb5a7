package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careerforge/backend/pkg/models"
)

func (r *SQLiteRepo) CreateOrganization(ctx context.Context, o *models.Organization) error {
	if o == nil {
		return fmt.Errorf("organization is nil")
	}

	ts := now()
	o.Created, o.Updated = ts, ts
	_, err := r.conn.Exec(ctx,
		`INSERT INTO organizations (id, created_by, name, logo_url, website, description, city, state, country, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.CreatedBy, o.Name, o.LogoURL, o.Website, o.Description, o.City, o.State, o.Country, o.Created, o.Updated)
	return err
}

func (r *SQLiteRepo) GetOrganizationByID(ctx context.Context, id string) (*models.Organization, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, created_by, name, logo_url, website, description, city, state, country, created, updated FROM organizations WHERE id = ?`, id)
	return scanOrganization(row)
}

func (r *SQLiteRepo) GetOrganizationByOwner(ctx context.Context, userID string) (*models.Organization, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, created_by, name, logo_url, website, description, city, state, country, created, updated FROM organizations WHERE created_by = ?`, userID)
	return scanOrganization(row)
}

func (r *SQLiteRepo) UpdateOrganization(ctx context.Context, o *models.Organization) error {
	if o == nil {
		return fmt.Errorf("organization is nil")
	}

	o.Updated = now()
	_, err := r.conn.Exec(ctx,
		`UPDATE organizations SET name = ?, logo_url = ?, website = ?, description = ?, city = ?, state = ?, country = ?, updated = ? WHERE id = ?`,
		o.Name, o.LogoURL, o.Website, o.Description, o.City, o.State, o.Country, o.Updated, o.ID)
	return err
}

func scanOrganization(row *sql.Row) (*models.Organization, error) {
	var o models.Organization
	var logo, website, desc, city, state, country sql.NullString
	if err := row.Scan(&o.ID, &o.CreatedBy, &o.Name, &logo, &website, &desc, &city, &state, &country, &o.Created, &o.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	o.LogoURL = logo.String
	o.Website = website.String
	o.Description = desc.String
	o.City = city.String
	o.State = state.String
	o.Country = country.String
	return &o, nil
}
