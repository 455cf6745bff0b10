package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/garnizeh/crewtrack/internal/db"
	"github.com/garnizeh/crewtrack/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.JobRepo = (*SQLiteRepo)(nil)
var _ repository.WorkerRepo = (*SQLiteRepo)(nil)
var _ repository.StatsRepo = (*SQLiteRepo)(nil)
var _ repository.HealthChecker = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

// Ping checks the underlying connection.
func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func count(ctx context.Context, q queryer, stmt string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func jobExists(ctx context.Context, q queryer, id int64) (bool, error) {
	n, err := count(ctx, q, `SELECT COUNT(1) FROM jobs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
