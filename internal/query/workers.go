package query

import (
	"net/url"
	"strconv"
)

const workerColumns = `id, name, role, job_id`

// WorkerQuery holds the filters of GET /workers. Unlike jobs, workers are
// always paginated.
type WorkerQuery struct {
	Name string
	Role string
	// JobID filters on the assigned job when non-zero.
	JobID int64
	Page  Page
}

// ParseWorkerQuery reads a WorkerQuery from URL query parameters. Missing or
// non-positive page/limit fall back to page 1 and defaultLimit.
func ParseWorkerQuery(v url.Values, defaultLimit int) WorkerQuery {
	q := WorkerQuery{
		Name: v.Get("name"),
		Role: v.Get("role"),
		Page: Page{Number: 1, Size: defaultLimit},
	}

	if id, err := strconv.ParseInt(v.Get("jobId"), 10, 64); err == nil {
		q.JobID = id
	}
	if n, ok := positiveInt(v.Get("page")); ok {
		q.Page.Number = n
	}
	if n, ok := positiveInt(v.Get("limit")); ok {
		q.Page.Size = n
	}

	return q
}

func (q WorkerQuery) where() *where {
	w := &where{}
	if q.Name != "" {
		w.contains("name", q.Name)
	}
	if q.Role != "" {
		w.contains("role", q.Role)
	}
	if q.JobID != 0 {
		w.add("job_id = ?", q.JobID)
	}

	return w
}

func (q WorkerQuery) Select() (string, []any) {
	w := q.where()
	stmt := "SELECT " + workerColumns + " FROM workers" + w.SQL() + " ORDER BY id ASC LIMIT ? OFFSET ?"
	return stmt, append(w.args, q.Page.Size, q.Page.Offset())
}

func (q WorkerQuery) Count() (string, []any) {
	w := q.where()
	return "SELECT COUNT(*) FROM workers" + w.SQL(), w.args
}

// WorkersOfJob lists the workers assigned to one job in id order.
func WorkersOfJob(jobID int64) (string, []any) {
	return "SELECT " + workerColumns + " FROM workers WHERE job_id = ? ORDER BY id ASC", []any{jobID}
}
