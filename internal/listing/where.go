package listing

import (
	"fmt"
	"strings"
)

// Where accumulates AND-ed SQL conditions and their positional arguments.
// Each condition uses "?" for its arguments; they are numbered on Add.
type Where struct {
	conds []string
	args  []any
}

func (w *Where) Add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// Like adds an ILIKE match of the search term against any of cols.
func (w *Where) Like(term string, cols ...string) {
	if term == "" || len(cols) == 0 {
		return
	}
	w.args = append(w.args, "%"+escapeLike(term)+"%")
	ph := fmt.Sprintf("$%d", len(w.args))
	ors := make([]string, len(cols))
	for i, c := range cols {
		ors[i] = c + " ILIKE " + ph
	}
	w.conds = append(w.conds, "("+strings.Join(ors, " OR ")+")")
}

func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []any { return w.args }

// Page appends LIMIT/OFFSET placeholders and returns them with the full argument list.
func (w *Where) Page(p Params) (string, []any) {
	args := append(append([]any{}, w.args...), p.PerPage, p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
