// Package querybuilder assembles parameterized Postgres filter, pagination and
// partial-update fragments.
package querybuilder

import (
	"fmt"
	"strings"
)

// Builder collects AND-ed WHERE conditions. Each "?" in a condition is rewritten
// to the next $n placeholder, so the argument list always matches the SQL text.
// A data query and its COUNT query rendered from the same Builder share the
// filter predicate and parameters.
type Builder struct {
	conds []string
	args  []interface{}
}

func New() *Builder {
	return &Builder{}
}

// Where appends a condition. The number of "?" markers must equal len(args).
func (b *Builder) Where(cond string, args ...interface{}) *Builder {
	var sb strings.Builder
	n := 0
	for _, r := range cond {
		if r == '?' {
			sb.WriteString(fmt.Sprintf("$%d", len(b.args)+n+1))
			n++
			continue
		}
		sb.WriteRune(r)
	}
	if n != len(args) {
		panic(fmt.Sprintf("querybuilder: %q has %d placeholders for %d args", cond, n, len(args)))
	}

	b.conds = append(b.conds, sb.String())
	b.args = append(b.args, args...)
	return b
}

// WhereIf appends the condition only when ok is true.
func (b *Builder) WhereIf(ok bool, cond string, args ...interface{}) *Builder {
	if ok {
		return b.Where(cond, args...)
	}
	return b
}

// Clause renders " WHERE a AND b", or "" without conditions.
func (b *Builder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns a copy of the bound arguments.
func (b *Builder) Args() []interface{} {
	out := make([]interface{}, len(b.args))
	copy(out, b.args)
	return out
}

// Next is the index of the next placeholder.
func (b *Builder) Next() int {
	return len(b.args) + 1
}

// Paginate renders the LIMIT/OFFSET suffix and the full argument list for it.
func (b *Builder) Paginate(p Page) (string, []interface{}) {
	n := b.Next()
	args := append(b.Args(), p.Limit, p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1), args
}
