package mock

import (
	"context"

	"github.com/garnizeh/crewtrack/internal/models"
	"github.com/garnizeh/crewtrack/internal/query"
	"github.com/garnizeh/crewtrack/pkg/repository"
)

// Repo is an in-memory stand-in for the store. Each method returns Err when it
// is set; otherwise it answers from the fixed fields below.
type Repo struct {
	Err error

	Jobs    []models.Job
	Workers []models.Worker
	Stat    *models.Stats

	// Calls counts invocations by method name.
	Calls map[string]int
}

func New() *Repo {
	return &Repo{Calls: make(map[string]int)}
}

func (m *Repo) record(name string) error {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[name]++
	return m.Err
}

func (m *Repo) CreateJob(ctx context.Context, j *models.Job) (*models.Job, error) {
	if err := m.record("CreateJob"); err != nil {
		return nil, err
	}
	out := *j
	out.ID = int64(len(m.Jobs) + 1)
	m.Jobs = append(m.Jobs, out)
	return &out, nil
}

func (m *Repo) ListJobs(ctx context.Context, q query.JobQuery) ([]models.Job, *query.Pagination, error) {
	if err := m.record("ListJobs"); err != nil {
		return nil, nil, err
	}
	out := append([]models.Job{}, m.Jobs...)
	if q.Page == nil {
		return out, nil, nil
	}
	p := query.NewPagination(*q.Page, int64(len(out)))
	return out, &p, nil
}

func (m *Repo) DeleteJob(ctx context.Context, id int64) error {
	if err := m.record("DeleteJob"); err != nil {
		return err
	}
	for i, j := range m.Jobs {
		if j.ID == id {
			m.Jobs = append(m.Jobs[:i], m.Jobs[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *Repo) CreateWorker(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	if err := m.record("CreateWorker"); err != nil {
		return nil, err
	}
	out := *w
	out.ID = int64(len(m.Workers) + 1)
	m.Workers = append(m.Workers, out)
	return &out, nil
}

func (m *Repo) CreateWorkers(ctx context.Context, ws []*models.Worker) ([]models.Worker, error) {
	if err := m.record("CreateWorkers"); err != nil {
		return nil, err
	}
	out := make([]models.Worker, 0, len(ws))
	for _, w := range ws {
		c := *w
		c.ID = int64(len(m.Workers) + 1)
		m.Workers = append(m.Workers, c)
		out = append(out, c)
	}
	return out, nil
}

func (m *Repo) ListWorkers(ctx context.Context, q query.WorkerQuery) ([]models.Worker, query.Pagination, error) {
	if err := m.record("ListWorkers"); err != nil {
		return nil, query.Pagination{}, err
	}
	return append([]models.Worker{}, m.Workers...), query.NewPagination(q.Page, int64(len(m.Workers))), nil
}

func (m *Repo) ListWorkersByJob(ctx context.Context, jobID int64) ([]models.Worker, error) {
	if err := m.record("ListWorkersByJob"); err != nil {
		return nil, err
	}
	out := []models.Worker{}
	for _, w := range m.Workers {
		if w.JobID != nil && *w.JobID == jobID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *Repo) Stats(ctx context.Context) (*models.Stats, error) {
	if err := m.record("Stats"); err != nil {
		return nil, err
	}
	if m.Stat != nil {
		return m.Stat, nil
	}
	return &models.Stats{
		Jobs:    models.JobStats{ByStatus: map[string]int64{}},
		Workers: models.WorkerStats{ByRole: map[string]int64{}},
	}, nil
}

func (m *Repo) Ping(ctx context.Context) error {
	return m.record("Ping")
}

var (
	_ repository.JobRepo       = (*Repo)(nil)
	_ repository.WorkerRepo    = (*Repo)(nil)
	_ repository.StatsRepo     = (*Repo)(nil)
	_ repository.HealthChecker = (*Repo)(nil)
)
