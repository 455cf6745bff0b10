// Package query turns listing parameters into SQL for the jobs and workers
// tables.
//
// Every filter is optional and filters combine with AND. Malformed values
// (dates that do not parse, unknown sort keys, non-positive ids) are dropped
// as if they had not been sent at all; callers never get an error from here.
package query

import (
	"strings"

	"github.com/garnizeh/crewtrack/internal/db"
)

// where accumulates conjunctive conditions and their bind arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// contains adds a case-insensitive substring match on column. Both sides are
// folded with strings.ToLower; the column through db.FoldFunc.
func (w *where) contains(column, term string) {
	w.add(db.FoldFunc+"("+column+") LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(term))+"%")
}

// SQL renders the clause including the WHERE keyword, or "" when empty.
func (w *where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(w.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
