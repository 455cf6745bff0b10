package models

// JobStatus is the closed set of states a job may be in. A job without a
// status has a nil *JobStatus.
type JobStatus string

const (
	StatusInProgress JobStatus = "In Progress"
	StatusCompleted  JobStatus = "Completed"
)

// Valid reports whether s belongs to the closed status set.
func (s JobStatus) Valid() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// Job is both the stored record and its wire representation. Absent optional
// values marshal as null.
type Job struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Customer    string     `json:"customer" db:"customer"`
	StartDate   *Date      `json:"startDate" db:"start_date"`
	EndDate     *Date      `json:"endDate" db:"end_date"`
	Status      *JobStatus `json:"status" db:"status"`
	WorkerCount int64      `json:"workerCount"`
}

type Worker struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Role  string `json:"role" db:"role"`
	JobID *int64 `json:"jobId" db:"job_id"`
}

// JobInput is the decoded body of POST /jobs. Dates stay raw so that values
// which do not parse can be dropped instead of failing the request.
type JobInput struct {
	Name      string `json:"name"`
	Customer  string `json:"customer"`
	StartDate any    `json:"startDate"`
	EndDate   any    `json:"endDate"`
	Status    string `json:"status"`
}

// Validate checks required fields and the status enum.
func (in *JobInput) Validate() error {
	if in.Name == "" || in.Customer == "" {
		return NewValidationError("Name and customer are required")
	}
	if in.Status != "" && !JobStatus(in.Status).Valid() {
		return NewValidationError("Invalid status")
	}

	return nil
}

// Job converts the input into a Job ready to be inserted.
func (in *JobInput) Job() *Job {
	j := &Job{
		Name:      in.Name,
		Customer:  in.Customer,
		StartDate: DateFromAny(in.StartDate),
		EndDate:   DateFromAny(in.EndDate),
	}
	if in.Status != "" {
		s := JobStatus(in.Status)
		j.Status = &s
	}

	return j
}

type WorkerInput struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	JobID *int64 `json:"jobId"`
}

func (in *WorkerInput) Validate() error {
	if in.Name == "" || in.Role == "" {
		return NewValidationError("Name and role are required")
	}

	return nil
}

func (in *WorkerInput) Worker() *Worker {
	return &Worker{Name: in.Name, Role: in.Role, JobID: in.JobID}
}

// Stats is the payload of GET /stats.
type Stats struct {
	Jobs    JobStats    `json:"jobs"`
	Workers WorkerStats `json:"workers"`
}

type JobStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type WorkerStats struct {
	Total  int64            `json:"total"`
	ByRole map[string]int64 `json:"byRole"`
}
