package sqlite

import (
	"time"

	"log/slog"

	"github.com/careerforge/backend/internal/db"
	"github.com/careerforge/backend/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.OrganizationRepo = (*SQLiteRepo)(nil)
var _ repository.PositionRepo = (*SQLiteRepo)(nil)
var _ repository.TrackedApplicationRepo = (*SQLiteRepo)(nil)
var _ repository.MilestoneRepo = (*SQLiteRepo)(nil)
var _ repository.SchemaRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
