package simplequery

import "strings"

// Operator is a comparison operator used in WHERE predicates.
type Operator string

const (
	OpEq Operator = "="
	OpNe Operator = "<>"
	OpLt Operator = "<"
	OpGt Operator = ">"
	OpLe Operator = "<="
	OpGe Operator = ">="
)

// legacyGe is the historical spelling of >= accepted as a key suffix.
const legacyGe = "=>"

// keySuffixes lists the operator suffixes recognised by ParseKey, longest
// first so that "<=" wins over "=".
var keySuffixes = []struct {
	suffix string
	op     Operator
}{
	{"<=", OpLe},
	{">=", OpGe},
	{legacyGe, OpGe},
	{"<>", OpNe},
	{"=", OpEq},
	{"<", OpLt},
	{">", OpGt},
}

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return true
	}
	return false
}

// ParseKey splits a filter key carrying an optional operator suffix, e.g.
// "num<=" yields ("num", OpLe, true). Keys without a recognised suffix use
// OpEq and report explicit=false. The suffix "=>" is read as ">=".
func ParseKey(key string) (column string, op Operator, explicit bool) {
	for _, s := range keySuffixes {
		if strings.HasSuffix(key, s.suffix) {
			return strings.TrimSpace(strings.TrimSuffix(key, s.suffix)), s.op, true
		}
	}
	return strings.TrimSpace(key), OpEq, false
}

// Filter is a single WHERE predicate. It is either a typed comparison
// (Column, Op, Value) bound as a parameter, or a raw SQL fragment.
type Filter struct {
	Column string
	Op     Operator
	Value  any

	raw string
}

// Raw returns a filter whose fragment is inserted into the WHERE clause
// verbatim. Nothing is escaped or bound: the caller guarantees the fragment is
// safe.
func Raw(fragment string) Filter {
	return Filter{raw: fragment}
}

// IsRaw reports whether f is a raw fragment.
func (f Filter) IsRaw() bool { return f.Column == "" && f.raw != "" }

// Fragment returns the raw SQL of a raw filter.
func (f Filter) Fragment() string { return f.raw }

// Cond builds a filter from a key with an optional operator suffix:
// Cond("num>", 3) compares num > 3, Cond("txt", "foo") compares txt = 'foo'.
func Cond(key string, value any) Filter {
	col, op, _ := ParseKey(key)
	return Filter{Column: col, Op: op, Value: value}
}

// Eq compares column = value.
func Eq(column string, value any) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

// Ne compares column <> value.
func Ne(column string, value any) Filter { return Filter{Column: column, Op: OpNe, Value: value} }

// Lt compares column < value.
func Lt(column string, value any) Filter { return Filter{Column: column, Op: OpLt, Value: value} }

// Gt compares column > value.
func Gt(column string, value any) Filter { return Filter{Column: column, Op: OpGt, Value: value} }

// Le compares column <= value.
func Le(column string, value any) Filter { return Filter{Column: column, Op: OpLe, Value: value} }

// Ge compares column >= value.
func Ge(column string, value any) Filter { return Filter{Column: column, Op: OpGe, Value: value} }

// Filters is an ordered list of predicates joined with AND.
type Filters []Filter

// Merge returns a copy of f with extra merged in. A typed filter replaces an
// existing one on the same column and operator, keeping its position; all
// other filters, raw fragments included, are appended.
func (f Filters) Merge(extra ...Filter) Filters {
	out := make(Filters, len(f), len(f)+len(extra))
	copy(out, f)
next:
	for _, e := range extra {
		if !e.IsRaw() {
			for i := range out {
				if !out[i].IsRaw() && out[i].Column == e.Column && out[i].Op == e.Op {
					out[i] = e
					continue next
				}
			}
		}
		out = append(out, e)
	}
	return out
}
