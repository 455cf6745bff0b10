package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/crewtrack/internal/models"
	"github.com/garnizeh/crewtrack/internal/query"
)

// CreateWorker inserts w. A jobId that does not reference an existing job is
// rejected with a validation error.
func (r *SQLiteRepo) CreateWorker(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	if w == nil {
		return nil, fmt.Errorf("worker is nil")
	}

	out, err := r.CreateWorkers(ctx, []*models.Worker{w})
	if err != nil {
		return nil, err
	}

	return &out[0], nil
}

// CreateWorkers inserts ws in a single transaction. If any worker fails,
// nothing is persisted.
func (r *SQLiteRepo) CreateWorkers(ctx context.Context, ws []*models.Worker) ([]models.Worker, error) {
	out := make([]models.Worker, 0, len(ws))
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		for i, w := range ws {
			if w == nil {
				return fmt.Errorf("worker %d is nil", i)
			}
			if w.JobID != nil {
				ok, err := jobExists(ctx, tx, *w.JobID)
				if err != nil {
					return fmt.Errorf("check job %d: %w", *w.JobID, err)
				}
				if !ok {
					return models.NewValidationError(fmt.Sprintf("Job %d does not exist", *w.JobID))
				}
			}

			res, err := tx.ExecContext(ctx, `INSERT INTO workers (name, role, job_id) VALUES (?, ?, ?)`, w.Name, w.Role, nullID(w.JobID))
			if err != nil {
				return fmt.Errorf("insert worker: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}

			stored := *w
			stored.ID = id
			out = append(out, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListWorkers returns one page of matching workers and the pagination envelope.
func (r *SQLiteRepo) ListWorkers(ctx context.Context, q query.WorkerQuery) ([]models.Worker, query.Pagination, error) {
	var (
		workers []models.Worker
		total   int64
	)
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, args := q.Count()
		var err error
		if total, err = count(ctx, tx, stmt, args...); err != nil {
			return fmt.Errorf("count workers: %w", err)
		}

		stmt, args = q.Select()
		workers, err = listWorkers(ctx, tx, stmt, args...)
		return err
	})
	if err != nil {
		return nil, query.Pagination{}, err
	}

	return workers, query.NewPagination(q.Page, total), nil
}

// ListWorkersByJob returns every worker assigned to jobID.
func (r *SQLiteRepo) ListWorkersByJob(ctx context.Context, jobID int64) ([]models.Worker, error) {
	var workers []models.Worker
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		ok, err := jobExists(ctx, tx, jobID)
		if err != nil {
			return fmt.Errorf("check job %d: %w", jobID, err)
		}
		if !ok {
			return models.ErrNotFound
		}

		stmt, args := query.WorkersOfJob(jobID)
		workers, err = listWorkers(ctx, tx, stmt, args...)
		return err
	})
	if err != nil {
		return nil, err
	}

	return workers, nil
}

func listWorkers(ctx context.Context, q queryer, stmt string, args ...any) ([]models.Worker, error) {
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	out := []models.Worker{}
	for rows.Next() {
		var (
			w     models.Worker
			jobID sql.NullInt64
		)
		if err := rows.Scan(&w.ID, &w.Name, &w.Role, &jobID); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		if jobID.Valid {
			v := jobID.Int64
			w.JobID = &v
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workers: %w", err)
	}

	return out, nil
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
