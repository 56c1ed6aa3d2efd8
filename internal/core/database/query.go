package db

import (
	"fmt"
	"strings"
	"time"
)

// MessageFilter carries the optional constraints a caller may put on a
// message lookup. A nil bound imposes no constraint; an empty keyword
// slice imposes no text constraint.
type MessageFilter struct {
	Start    *time.Time
	End      *time.Time
	Keywords []string
}

// appendClauses extends where/args with the filter's constraints using
// $n placeholders. When neither time bound is set no timestamp clause is
// emitted at all. Keywords become a single OR-group of case-insensitive
// substring matches, ANDed with everything else.
func (f MessageFilter) appendClauses(where []string, args []any) ([]string, []any) {
	if v := f.Start; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf(`"timestamp" >= $%d`, len(args)))
	}
	if v := f.End; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf(`"timestamp" <= $%d`, len(args)))
	}
	if len(f.Keywords) > 0 {
		group := make([]string, 0, len(f.Keywords))
		for _, kw := range f.Keywords {
			args = append(args, "%"+escapeLike(kw)+"%")
			group = append(group, fmt.Sprintf(`message ILIKE $%d`, len(args)))
		}
		where = append(where, "("+strings.Join(group, " OR ")+")")
	}
	return where, args
}

// escapeLike neutralizes LIKE metacharacters so a keyword is always a
// literal substring match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
