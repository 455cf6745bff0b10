package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/garnizeh/crewtrack/internal/models"
	"github.com/garnizeh/crewtrack/internal/query"
)

// CreateJob inserts j and returns the stored record.
func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (*models.Job, error) {
	if j == nil {
		return nil, fmt.Errorf("job is nil")
	}

	out := *j
	out.WorkerCount = 0
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO jobs (name, customer, start_date, end_date, status) VALUES (?, ?, ?, ?, ?)`,
			j.Name, j.Customer, nullDate(j.StartDate), nullDate(j.EndDate), nullStatus(j.Status))
		if err != nil {
			return err
		}
		out.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	return &out, nil
}

// ListJobs runs q. Count and page are read in the same transaction so that
// the total matches the page.
func (r *SQLiteRepo) ListJobs(ctx context.Context, q query.JobQuery) ([]models.Job, *query.Pagination, error) {
	var (
		jobs       []models.Job
		pagination *query.Pagination
	)
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if q.Page != nil {
			stmt, args := q.Count()
			total, err := count(ctx, tx, stmt, args...)
			if err != nil {
				return fmt.Errorf("count jobs: %w", err)
			}
			p := query.NewPagination(*q.Page, total)
			pagination = &p
		}

		stmt, args := q.Select()
		rows, err := tx.QueryContext(ctx, stmt, args...)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			j, err := scanJob(rows)
			if err != nil {
				return fmt.Errorf("scan job: %w", err)
			}
			jobs = append(jobs, j)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, nil, err
	}

	if jobs == nil {
		jobs = []models.Job{}
	}

	return jobs, pagination, nil
}

// DeleteJob unassigns the job's workers and deletes it in one transaction.
func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	var unassigned int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE workers SET job_id = NULL WHERE job_id = ?`, id)
		if err != nil {
			return fmt.Errorf("unassign workers: %w", err)
		}
		if unassigned, err = res.RowsAffected(); err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete job %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("job deleted", slog.Int64("id", id), slog.Int64("unassigned_workers", unassigned))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(s rowScanner) (models.Job, error) {
	var (
		j          models.Job
		start, end sql.NullString
		status     sql.NullString
	)
	if err := s.Scan(&j.ID, &j.Name, &j.Customer, &start, &end, &status, &j.WorkerCount); err != nil {
		return j, err
	}

	if start.Valid {
		if d, ok := models.ParseDate(start.String); ok {
			j.StartDate = &d
		}
	}
	if end.Valid {
		if d, ok := models.ParseDate(end.String); ok {
			j.EndDate = &d
		}
	}
	if status.Valid {
		s := models.JobStatus(status.String)
		j.Status = &s
	}

	return j, nil
}

func nullDate(d *models.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullStatus(s *models.JobStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}
