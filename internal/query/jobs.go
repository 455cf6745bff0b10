package query

import (
	"net/url"

	"github.com/garnizeh/crewtrack/internal/models"
)

// jobSortColumns maps the accepted sortBy values to columns. Keys outside
// this map are ignored and the default id order applies.
var jobSortColumns = map[string]string{
	"name":       "j.name",
	"customer":   "j.customer",
	"start_date": "j.start_date",
	"end_date":   "j.end_date",
	"status":     "j.status",
}

const jobColumns = `j.id, j.name, j.customer, j.start_date, j.end_date, j.status,
	(SELECT COUNT(*) FROM workers w WHERE w.job_id = j.id) AS worker_count`

// JobQuery holds the filters of GET /jobs.
type JobQuery struct {
	Name       string
	Customer   string
	Status     string
	StartAfter *models.Date
	EndBefore  *models.Date
	// SortBy is a key of jobSortColumns, or "" for id order.
	SortBy string
	Desc   bool
	// Page is nil when the full result set is requested.
	Page *Page
}

// ParseJobQuery reads a JobQuery from URL query parameters.
func ParseJobQuery(v url.Values) JobQuery {
	q := JobQuery{
		Name:     v.Get("name"),
		Customer: v.Get("customer"),
		Status:   v.Get("status"),
	}

	if d, ok := models.ParseDate(v.Get("startAfter")); ok {
		q.StartAfter = &d
	}
	if d, ok := models.ParseDate(v.Get("endBefore")); ok {
		q.EndBefore = &d
	}

	if _, ok := jobSortColumns[v.Get("sortBy")]; ok {
		q.SortBy = v.Get("sortBy")
		q.Desc = v.Get("order") == "desc"
	}

	// jobs paginate only when both values are present and positive
	page, okPage := positiveInt(v.Get("page"))
	limit, okLimit := positiveInt(v.Get("limit"))
	if okPage && okLimit {
		q.Page = &Page{Number: page, Size: limit}
	}

	return q
}

func (q JobQuery) where() *where {
	w := &where{}
	if q.Name != "" {
		w.contains("j.name", q.Name)
	}
	if q.Customer != "" {
		w.contains("j.customer", q.Customer)
	}
	if q.Status != "" {
		w.add("j.status = ?", q.Status)
	}
	if q.StartAfter != nil {
		w.add("j.start_date >= ?", q.StartAfter.String())
	}
	if q.EndBefore != nil {
		w.add("j.end_date <= ?", q.EndBefore.String())
	}

	return w
}

// OrderBy renders the ORDER BY clause. Ties fall back to id so pages are stable.
func (q JobQuery) OrderBy() string {
	col, ok := jobSortColumns[q.SortBy]
	if !ok {
		return " ORDER BY j.id ASC"
	}
	dir := " ASC"
	if q.Desc {
		dir = " DESC"
	}

	return " ORDER BY " + col + dir + ", j.id ASC"
}

// Select returns the statement listing matching jobs with their worker count.
func (q JobQuery) Select() (string, []any) {
	w := q.where()
	stmt := "SELECT " + jobColumns + " FROM jobs j" + w.SQL() + q.OrderBy()
	args := w.args
	if q.Page != nil {
		stmt += " LIMIT ? OFFSET ?"
		args = append(args, q.Page.Size, q.Page.Offset())
	}

	return stmt, args
}

// Count returns the statement counting matching jobs, ignoring pagination.
func (q JobQuery) Count() (string, []any) {
	w := q.where()
	return "SELECT COUNT(*) FROM jobs j" + w.SQL(), w.args
}
