package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/crewtrack/internal/models"
)

// Stats computes job and worker counts. Every call reads the tables afresh;
// the four queries share one transaction so totals agree with the groupings.
func (r *SQLiteRepo) Stats(ctx context.Context) (*models.Stats, error) {
	st := &models.Stats{
		Jobs:    models.JobStats{ByStatus: map[string]int64{}},
		Workers: models.WorkerStats{ByRole: map[string]int64{}},
	}

	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		if st.Jobs.Total, err = count(ctx, tx, `SELECT COUNT(*) FROM jobs`); err != nil {
			return fmt.Errorf("count jobs: %w", err)
		}
		if err := groupCounts(ctx, tx, `SELECT status, COUNT(*) FROM jobs WHERE status IS NOT NULL GROUP BY status`, st.Jobs.ByStatus); err != nil {
			return fmt.Errorf("jobs by status: %w", err)
		}
		if st.Workers.Total, err = count(ctx, tx, `SELECT COUNT(*) FROM workers`); err != nil {
			return fmt.Errorf("count workers: %w", err)
		}
		if err := groupCounts(ctx, tx, `SELECT role, COUNT(*) FROM workers GROUP BY role`, st.Workers.ByRole); err != nil {
			return fmt.Errorf("workers by role: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return st, nil
}

// groupCounts fills into with key -> count rows produced by stmt.
func groupCounts(ctx context.Context, q queryer, stmt string, into map[string]int64) error {
	rows, err := q.QueryContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key string
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}

	return rows.Err()
}
