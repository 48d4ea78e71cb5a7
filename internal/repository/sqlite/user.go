package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careerforge/backend/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	ts := now()
	u.Created, u.Updated = ts, ts
	_, err := r.conn.Exec(ctx,
		`INSERT INTO users (id, platform, first_name, last_name, email, password_hash, job_title, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Platform, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.JobTitle, u.Created, u.Updated)
	return err
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, platform, first_name, last_name, email, password_hash, job_title, created, updated FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, platform, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, platform, first_name, last_name, email, password_hash, job_title, created, updated FROM users WHERE platform = ? AND email = ?`, platform, email)
	return scanUser(row)
}

func (r *SQLiteRepo) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	u.Updated = now()
	_, err := r.conn.Exec(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ?, password_hash = ?, job_title = ?, updated = ? WHERE id = ?`,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.JobTitle, u.Updated, u.ID)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var lastName, jobTitle sql.NullString
	if err := row.Scan(&u.ID, &u.Platform, &u.FirstName, &lastName, &u.Email, &u.PasswordHash, &jobTitle, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	u.LastName = lastName.String
	u.JobTitle = jobTitle.String
	return &u, nil
}
