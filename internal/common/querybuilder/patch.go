package querybuilder

import (
	"fmt"
	"strings"
)

// Patch is an ordered column -> value mapping describing a partial update.
// A column that is present with a nil value is set to NULL.
type Patch struct {
	cols []string
	vals map[string]interface{}
}

func NewPatch() *Patch {
	return &Patch{vals: map[string]interface{}{}}
}

// PatchFrom builds a patch from the keys present in values, in keys order.
func PatchFrom(values map[string]interface{}, keys []string) *Patch {
	p := NewPatch()
	for _, k := range keys {
		if v, ok := values[k]; ok {
			p.Set(k, v)
		}
	}
	return p
}

// Set adds or replaces a column. Replacing keeps the original position.
func (p *Patch) Set(col string, v interface{}) *Patch {
	if _, ok := p.vals[col]; !ok {
		p.cols = append(p.cols, col)
	}
	p.vals[col] = v
	return p
}

func (p *Patch) Get(col string) (interface{}, bool) {
	v, ok := p.vals[col]
	return v, ok
}

func (p *Patch) Has(col string) bool {
	_, ok := p.vals[col]
	return ok
}

func (p *Patch) Len() int {
	return len(p.cols)
}

func (p *Patch) Columns() []string {
	out := make([]string, len(p.cols))
	copy(out, p.cols)
	return out
}

// SetClause renders "a = $start, b = $start+1" and its arguments.
func (p *Patch) SetClause(start int) (string, []interface{}) {
	parts := make([]string, 0, len(p.cols))
	args := make([]interface{}, 0, len(p.cols))
	for i, col := range p.cols {
		parts = append(parts, fmt.Sprintf("%s = $%d", col, start+i))
		args = append(args, p.vals[col])
	}
	return strings.Join(parts, ", "), args
}

// Only returns a copy restricted to the allowed columns, keeping order. Column
// names end up in SQL text, so repositories pass their writable columns here.
func (p *Patch) Only(allowed ...string) *Patch {
	keep := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		keep[a] = true
	}
	out := NewPatch()
	for _, col := range p.cols {
		if keep[col] {
			out.Set(col, p.vals[col])
		}
	}
	return out
}
