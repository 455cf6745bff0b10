package query

import (
	"math"
	"strconv"
)

// Page selects one page of a result set. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows skipped before this page. Offsets that do not
// fit in an int are capped at math.MaxInt, which still lies past every row.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}

	return (p.Number - 1) * p.Size
}

// Pagination is the envelope returned next to a page of results.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
}

// NewPagination computes the envelope for page p over total matching rows.
// Pages is ceil(total/size), and 0 for an empty result.
func NewPagination(p Page, total int64) Pagination {
	var pages int64
	if p.Size > 0 {
		size := int64(p.Size)
		pages = total / size
		if total%size != 0 {
			pages++
		}
	}

	return Pagination{Page: p.Number, PerPage: p.Size, Total: total, Pages: pages}
}

// positiveInt parses s and reports whether it is an integer > 0.
func positiveInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
