package sqlite

import (
	"context"
	"database/sql"

	"github.com/careerforge/backend/pkg/models"
)

func (r *SQLiteRepo) GetSchemaByVersion(ctx context.Context, version string) (*models.Schema, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, version, description, schema_json, created, updated FROM llm_schemas WHERE version = ?`, version)
	var s models.Schema
	var desc sql.NullString
	if err := row.Scan(&s.ID, &s.Version, &desc, &s.SchemaJSON, &s.Created, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.Description = desc.String
	return &s, nil
}
