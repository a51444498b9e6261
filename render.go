package simplequery

import (
	"fmt"
	"strings"

	"github.com/guadalsistema/go-simple-query/dialect"
)

// renderer accumulates bound parameters while a statement is written.
// Placeholders are numbered in the order they appear in the SQL text.
type renderer struct {
	dialect dialect.Dialect
	names   paramNames
	params  []Param
}

func newRenderer(d dialect.Dialect) *renderer {
	if d == nil {
		d = dialect.Default
	}
	return &renderer{dialect: d, names: paramNames{}}
}

func (r *renderer) bind(column string, value any) string {
	p := newParam(r.names.take(column), value)
	r.params = append(r.params, p)
	return r.dialect.Placeholder(p.Name, len(r.params))
}

// args converts the collected params into driver arguments: sql.NamedArg
// values for named dialects, plain values in placeholder order otherwise.
func (r *renderer) args() []any {
	out := make([]any, len(r.params))
	for i, p := range r.params {
		if r.dialect.Named() {
			out[i] = p.NamedArg()
		} else {
			out[i] = p.Arg()
		}
	}
	return out
}

func (r *renderer) selectColumns(cols []Column) (string, error) {
	if len(cols) == 0 {
		return "*", nil
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		if c.Expr == "" {
			return "", NewErrEmptyColumn("SELECT")
		}
		if c.Alias == "" {
			parts[i] = c.Expr
			continue
		}
		parts[i] = fmt.Sprintf("%s AS %s", c.Expr, c.Alias)
	}
	return strings.Join(parts, ", "), nil
}

func (r *renderer) insert(table string, fields Fields) (string, error) {
	cols := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	for i, f := range fields {
		if f.Column == "" {
			return "", NewErrEmptyColumn("INSERT")
		}
		cols[i] = f.Column
		placeholders[i] = r.bind(f.Column, f.Value)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ","), strings.Join(placeholders, ",")), nil
}

func (r *renderer) assignments(fields Fields) (string, error) {
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f.Column == "" {
			return "", NewErrEmptyColumn("UPDATE")
		}
		parts[i] = f.Column + "=" + r.bind(f.Column, f.Value)
	}
	return strings.Join(parts, ","), nil
}

// where renders the WHERE clause, or "" when there are no filters.
func (r *renderer) where(filters Filters) (string, error) {
	if len(filters) == 0 {
		return "", nil
	}
	parts := make([]string, len(filters))
	for i, f := range filters {
		if f.IsRaw() {
			parts[i] = f.Fragment()
			continue
		}
		if f.Column == "" {
			return "", NewErrEmptyColumn("WHERE")
		}
		op := f.Op
		if op == "" {
			op = OpEq
		}
		if !op.Valid() {
			return "", NewErrInvalidOperator(string(op))
		}
		parts[i] = f.Column + string(op) + r.bind(f.Column, f.Value)
	}
	return "WHERE " + strings.Join(parts, " AND "), nil
}

func joinClauses(clauses ...string) string {
	var parts []string
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
