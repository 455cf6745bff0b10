package repository

import (
	"context"

	"github.com/garnizeh/crewtrack/internal/models"
	"github.com/garnizeh/crewtrack/internal/query"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (*models.Job, error)
	// ListJobs returns the matching jobs. The pagination is nil when q.Page is nil.
	ListJobs(ctx context.Context, q query.JobQuery) ([]models.Job, *query.Pagination, error)
	// DeleteJob removes a job and unassigns its workers. Unknown ids yield models.ErrNotFound.
	DeleteJob(ctx context.Context, id int64) error
}

type WorkerRepo interface {
	CreateWorker(ctx context.Context, w *models.Worker) (*models.Worker, error)
	// CreateWorkers inserts all workers in one transaction, or none of them.
	CreateWorkers(ctx context.Context, ws []*models.Worker) ([]models.Worker, error)
	ListWorkers(ctx context.Context, q query.WorkerQuery) ([]models.Worker, query.Pagination, error)
	// ListWorkersByJob yields models.ErrNotFound when the job does not exist.
	ListWorkersByJob(ctx context.Context, jobID int64) ([]models.Worker, error)
}

type StatsRepo interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
