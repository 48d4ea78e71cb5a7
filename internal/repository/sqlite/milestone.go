package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/careerforge/backend/pkg/models"
)

func (r *SQLiteRepo) CreateMilestone(ctx context.Context, m *models.Milestone) error {
	if m == nil {
		return fmt.Errorf("milestone is nil")
	}

	tasks, err := encodeTasks(m.Tasks)
	if err != nil {
		return err
	}

	ts := now()
	m.Created, m.Updated = ts, ts
	_, err = r.conn.Exec(ctx,
		`INSERT INTO milestones (id, user_id, name, type, description, tasks, is_completed, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Name, m.Type, m.Description, tasks, m.IsCompleted, m.Created, m.Updated)
	return err
}

func (r *SQLiteRepo) GetMilestoneByID(ctx context.Context, userID, id string) (*models.Milestone, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, user_id, name, type, description, tasks, is_completed, created, updated FROM milestones WHERE id = ? AND user_id = ?`,
		id, userID)
	return scanMilestone(row)
}

func (r *SQLiteRepo) ListMilestonesByUser(ctx context.Context, userID string) ([]models.Milestone, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, name, type, description, tasks, is_completed, created, updated FROM milestones WHERE user_id = ? ORDER BY created DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	if m == nil {
		return fmt.Errorf("milestone is nil")
	}

	tasks, err := encodeTasks(m.Tasks)
	if err != nil {
		return err
	}

	m.Updated = now()
	_, err = r.conn.Exec(ctx,
		`UPDATE milestones SET name = ?, type = ?, description = ?, tasks = ?, is_completed = ?, updated = ? WHERE id = ?`,
		m.Name, m.Type, m.Description, tasks, m.IsCompleted, m.Updated, m.ID)
	return err
}

func (r *SQLiteRepo) DeleteMilestone(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	return err
}

func encodeTasks(tasks map[string]bool) (string, error) {
	if tasks == nil {
		return "{}", nil
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(b), nil
}

func scanMilestone(row rowScanner) (*models.Milestone, error) {
	var m models.Milestone
	var typ, desc sql.NullString
	var tasks string
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &typ, &desc, &tasks, &m.IsCompleted, &m.Created, &m.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	m.Type = typ.String
	m.Description = desc.String
	if err := json.Unmarshal([]byte(tasks), &m.Tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return &m, nil
}
