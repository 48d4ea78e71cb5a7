package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careerforge/backend/pkg/models"
)

const positionColumns = `id, user_id, organization_id, title, job_category, position_type, level_of_experience, role_description, workplace_type, city, state, country, minimum_pay, maximum_pay, pay_frequency, closing_date, external_link, status, created, updated`

func (r *SQLiteRepo) CreatePosition(ctx context.Context, p *models.Position) error {
	if p == nil {
		return fmt.Errorf("position is nil")
	}

	ts := now()
	p.Created, p.Updated = ts, ts
	_, err := r.conn.Exec(ctx,
		`INSERT INTO positions (`+positionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.OrganizationID, p.Title, p.JobCategory, p.PositionType, p.LevelOfExperience,
		p.RoleDescription, p.WorkplaceType, p.City, p.State, p.Country, p.MinimumPay, p.MaximumPay,
		p.PayFrequency, p.ClosingDate, p.ExternalLink, p.Status, p.Created, p.Updated)
	return err
}

func (r *SQLiteRepo) GetPositionByID(ctx context.Context, id string) (*models.Position, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+positionColumns+` FROM positions WHERE id = ?`, id)
	p, err := scanPosition(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// GetPositionInfo joins the position with its organization for display on
// tracked-application responses.
func (r *SQLiteRepo) GetPositionInfo(ctx context.Context, id string) (*models.PositionInfo, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT p.id, p.title, o.name, o.logo_url, p.position_type, p.workplace_type, p.city, p.state, p.country
		 FROM positions p JOIN organizations o ON o.id = p.organization_id
		 WHERE p.id = ?`, id)

	var info models.PositionInfo
	var logo, posType, workType, city, state, country sql.NullString
	if err := row.Scan(&info.ID, &info.Title, &info.OrganizationName, &logo, &posType, &workType, &city, &state, &country); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	info.OrganizationLogo = logo.String
	info.PositionType = posType.String
	info.WorkplaceType = workType.String
	info.City = city.String
	info.State = state.String
	info.Country = country.String
	return &info, nil
}

func (r *SQLiteRepo) ListPositions(ctx context.Context, limit, offset int) ([]models.Position, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT `+positionColumns+` FROM positions ORDER BY created DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPositions(rows)
}

func (r *SQLiteRepo) ListPositionsByOwner(ctx context.Context, userID string, limit, offset int) ([]models.Position, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT `+positionColumns+` FROM positions WHERE user_id = ? ORDER BY created DESC LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPositions(rows)
}

func (r *SQLiteRepo) UpdatePosition(ctx context.Context, p *models.Position) error {
	if p == nil {
		return fmt.Errorf("position is nil")
	}

	p.Updated = now()
	_, err := r.conn.Exec(ctx,
		`UPDATE positions SET title = ?, job_category = ?, position_type = ?, level_of_experience = ?, role_description = ?, workplace_type = ?, city = ?, state = ?, country = ?, minimum_pay = ?, maximum_pay = ?, pay_frequency = ?, closing_date = ?, external_link = ?, status = ?, updated = ? WHERE id = ?`,
		p.Title, p.JobCategory, p.PositionType, p.LevelOfExperience, p.RoleDescription, p.WorkplaceType,
		p.City, p.State, p.Country, p.MinimumPay, p.MaximumPay, p.PayFrequency, p.ClosingDate,
		p.ExternalLink, p.Status, p.Updated, p.ID)
	return err
}

func (r *SQLiteRepo) DeletePosition(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM positions WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (*models.Position, error) {
	var p models.Position
	var category, posType, level, desc, workType, city, state, country, payFreq, closing, link, status sql.NullString
	var minPay, maxPay sql.NullFloat64
	if err := row.Scan(&p.ID, &p.UserID, &p.OrganizationID, &p.Title, &category, &posType, &level, &desc,
		&workType, &city, &state, &country, &minPay, &maxPay, &payFreq, &closing, &link, &status,
		&p.Created, &p.Updated); err != nil {
		return nil, err
	}

	p.JobCategory = category.String
	p.PositionType = posType.String
	p.LevelOfExperience = level.String
	p.RoleDescription = desc.String
	p.WorkplaceType = workType.String
	p.City = city.String
	p.State = state.String
	p.Country = country.String
	p.PayFrequency = payFreq.String
	p.ClosingDate = closing.String
	p.ExternalLink = link.String
	p.Status = status.String
	if minPay.Valid {
		p.MinimumPay = &minPay.Float64
	}
	if maxPay.Valid {
		p.MaximumPay = &maxPay.Float64
	}
	return &p, nil
}

func collectPositions(rows *sql.Rows) ([]models.Position, error) {
	var out []models.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
