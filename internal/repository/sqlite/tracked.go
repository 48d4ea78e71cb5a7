package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/careerforge/backend/internal/stage"
	"github.com/careerforge/backend/pkg/models"
	"github.com/careerforge/backend/pkg/repository"
)

// Stage maps are stored as canonical-order JSON text so the persisted
// representation is deterministic (see stage.Map.MarshalJSON).

func (r *SQLiteRepo) CreateTrackedApplication(ctx context.Context, a *models.TrackedApplication) error {
	if a == nil {
		return fmt.Errorf("tracked application is nil")
	}

	stageJSON, err := json.Marshal(a.Stage)
	if err != nil {
		return fmt.Errorf("encode stage map: %w", err)
	}

	ts := now()
	a.Created, a.Updated = ts, ts
	_, err = r.conn.Exec(ctx,
		`INSERT INTO tracked_applications (id, user_id, position_id, activity, reaction, notes, stage, is_favourite, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.PositionID, a.Activity, a.Reaction, a.Notes, string(stageJSON), a.IsFavourite, a.Created, a.Updated)
	return err
}

func (r *SQLiteRepo) GetTrackedApplication(ctx context.Context, userID, positionID string) (*models.TrackedApplication, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, user_id, position_id, activity, reaction, notes, stage, is_favourite, created, updated FROM tracked_applications WHERE user_id = ? AND position_id = ?`,
		userID, positionID)
	return scanTracked(row)
}

func (r *SQLiteRepo) ListTrackedApplications(ctx context.Context, userID string, limit, offset int) ([]models.TrackedApplication, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, position_id, activity, reaction, notes, stage, is_favourite, created, updated FROM tracked_applications WHERE user_id = ? ORDER BY created DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TrackedApplication
	for rows.Next() {
		a, err := scanTracked(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateTrackedApplication(ctx context.Context, a *models.TrackedApplication) error {
	if a == nil {
		return fmt.Errorf("tracked application is nil")
	}

	stageJSON, err := json.Marshal(a.Stage)
	if err != nil {
		return fmt.Errorf("encode stage map: %w", err)
	}

	// guarded write: the row must still carry the timestamp the caller read,
	// otherwise another request got there first
	prev := a.Updated
	a.Updated = now()
	res, err := r.conn.Exec(ctx,
		`UPDATE tracked_applications SET activity = ?, reaction = ?, notes = ?, stage = ?, is_favourite = ?, updated = ? WHERE id = ? AND updated = ?`,
		a.Activity, a.Reaction, a.Notes, string(stageJSON), a.IsFavourite, a.Updated, a.ID, prev)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		a.Updated = prev
		return repository.ErrStaleRecord
	}
	return nil
}

func (r *SQLiteRepo) DeleteTrackedApplication(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM tracked_applications WHERE id = ?`, id)
	return err
}

func scanTracked(row rowScanner) (*models.TrackedApplication, error) {
	var a models.TrackedApplication
	var activity, reaction, notes sql.NullString
	var stageJSON string
	if err := row.Scan(&a.ID, &a.UserID, &a.PositionID, &activity, &reaction, &notes, &stageJSON, &a.IsFavourite, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	a.Activity = activity.String
	a.Reaction = reaction.String
	a.Notes = notes.String

	var m stage.Map
	if err := json.Unmarshal([]byte(stageJSON), &m); err != nil {
		return nil, fmt.Errorf("decode stage map: %w", err)
	}
	a.Stage = m
	return &a, nil
}
