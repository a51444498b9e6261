package simplequery

import "github.com/guadalsistema/go-simple-query/dialect"

// Statement is an immutable description of one SQL statement. It is
// implemented by SelectQuery, InsertQuery, UpdateQuery and DeleteQuery; each
// carries only the parts meaningful for its kind.
type Statement interface {
	Kind() Kind
	Table() string
	// ToSQL renders the statement with named (:name) placeholders and returns
	// the parameters to bind, in placeholder order.
	ToSQL() (string, []Param, error)

	render(r *renderer) (string, error)
}

func toSQL(s Statement) (string, []Param, error) {
	return Render(s, nil)
}

// Render renders s with the placeholder style of d, the form Exec sends to
// the database. A nil d uses named placeholders, like ToSQL.
func Render(s Statement, d dialect.Dialect) (string, []Param, error) {
	r := newRenderer(d)
	query, err := s.render(r)
	if err != nil {
		return "", nil, err
	}
	return query, r.params, nil
}

// where and andWhere implement the shared filter semantics. A nil list means
// no WHERE clause; andWhere requires an existing list.
func where(filters []Filter) Filters {
	if len(filters) == 0 {
		return nil
	}
	return Filters(nil).Merge(filters...)
}

func andWhere(cur Filters, err error, extra []Filter) (Filters, error) {
	if err != nil {
		return cur, err
	}
	if cur == nil {
		return cur, ErrAndWhereWithoutWhere
	}
	return cur.Merge(extra...), nil
}

// SelectQuery is a SELECT statement. No columns selects every column.
type SelectQuery struct {
	table   string
	columns []Column
	filters Filters
	err     error
}

// Select starts a SELECT statement over the given columns.
func Select(cols ...Column) SelectQuery {
	return SelectQuery{columns: append([]Column(nil), cols...)}
}

func (s SelectQuery) Kind() Kind { return KindSelect }
func (s SelectQuery) Table() string { return s.table }
func (s SelectQuery) Columns() []Column { return s.columns }
func (s SelectQuery) Filters() Filters { return s.filters }

// From sets the table to read from.
func (s SelectQuery) From(table string) SelectQuery {
	s.table = table
	return s
}

// Where replaces the filter list. Calling it without filters removes the
// WHERE clause.
func (s SelectQuery) Where(filters ...Filter) SelectQuery {
	s.filters = where(filters)
	return s
}

// AndWhere merges filters into the list set by Where. Without a prior Where
// the statement fails to render with ErrAndWhereWithoutWhere.
func (s SelectQuery) AndWhere(filters ...Filter) SelectQuery {
	s.filters, s.err = andWhere(s.filters, s.err, filters)
	return s
}

func (s SelectQuery) ToSQL() (string, []Param, error) { return toSQL(s) }

func (s SelectQuery) render(r *renderer) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.table == "" {
		return "", NewErrMissingTable(KindSelect)
	}
	cols, err := r.selectColumns(s.columns)
	if err != nil {
		return "", err
	}
	filter, err := r.where(s.filters)
	if err != nil {
		return "", err
	}
	return joinClauses("SELECT "+cols, "FROM "+s.table, filter), nil
}

// InsertQuery is an INSERT of a single row.
type InsertQuery struct {
	table  string
	fields Fields
}

// Insert starts an INSERT writing fields.
func Insert(fields Fields) InsertQuery {
	return InsertQuery{fields: append(Fields(nil), fields...)}
}

func (s InsertQuery) Kind() Kind { return KindInsert }
func (s InsertQuery) Table() string { return s.table }
func (s InsertQuery) Fields() Fields { return s.fields }

// Into sets the target table.
func (s InsertQuery) Into(table string) InsertQuery {
	s.table = table
	return s
}

func (s InsertQuery) ToSQL() (string, []Param, error) { return toSQL(s) }

func (s InsertQuery) render(r *renderer) (string, error) {
	if s.table == "" {
		return "", NewErrMissingTable(KindInsert)
	}
	if len(s.fields) == 0 {
		return "", NewErrMissingFields(KindInsert)
	}
	return r.insert(s.table, s.fields)
}

// UpdateQuery is an UPDATE statement. Its parameters are the fields followed
// by the filters.
type UpdateQuery struct {
	table   string
	fields  Fields
	filters Filters
	err     error
}

// Update starts an UPDATE writing fields.
func Update(fields Fields) UpdateQuery {
	return UpdateQuery{fields: append(Fields(nil), fields...)}
}

func (s UpdateQuery) Kind() Kind { return KindUpdate }
func (s UpdateQuery) Table() string { return s.table }
func (s UpdateQuery) Fields() Fields { return s.fields }
func (s UpdateQuery) Filters() Filters { return s.filters }

// From sets the table to update.
func (s UpdateQuery) From(table string) UpdateQuery {
	s.table = table
	return s
}

// Where replaces the filter list. Calling it without filters removes the
// WHERE clause.
func (s UpdateQuery) Where(filters ...Filter) UpdateQuery {
	s.filters = where(filters)
	return s
}

// AndWhere merges filters into the list set by Where.
func (s UpdateQuery) AndWhere(filters ...Filter) UpdateQuery {
	s.filters, s.err = andWhere(s.filters, s.err, filters)
	return s
}

func (s UpdateQuery) ToSQL() (string, []Param, error) { return toSQL(s) }

func (s UpdateQuery) render(r *renderer) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.table == "" {
		return "", NewErrMissingTable(KindUpdate)
	}
	if len(s.fields) == 0 {
		return "", NewErrMissingFields(KindUpdate)
	}
	set, err := r.assignments(s.fields)
	if err != nil {
		return "", err
	}
	filter, err := r.where(s.filters)
	if err != nil {
		return "", err
	}
	return joinClauses("UPDATE "+s.table, "SET "+set, filter), nil
}

// DeleteQuery is a DELETE statement. Without filters it removes every row.
type DeleteQuery struct {
	table   string
	filters Filters
	err     error
}

// Delete starts a DELETE statement.
func Delete() DeleteQuery {
	return DeleteQuery{}
}

func (s DeleteQuery) Kind() Kind { return KindDelete }
func (s DeleteQuery) Table() string { return s.table }
func (s DeleteQuery) Filters() Filters { return s.filters }

// From sets the table to delete from.
func (s DeleteQuery) From(table string) DeleteQuery {
	s.table = table
	return s
}

// Where replaces the filter list. Without filters every row is deleted.
func (s DeleteQuery) Where(filters ...Filter) DeleteQuery {
	s.filters = where(filters)
	return s
}

// AndWhere merges filters into the list set by Where.
func (s DeleteQuery) AndWhere(filters ...Filter) DeleteQuery {
	s.filters, s.err = andWhere(s.filters, s.err, filters)
	return s
}

func (s DeleteQuery) ToSQL() (string, []Param, error) { return toSQL(s) }

func (s DeleteQuery) render(r *renderer) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.table == "" {
		return "", NewErrMissingTable(KindDelete)
	}
	filter, err := r.where(s.filters)
	if err != nil {
		return "", err
	}
	return joinClauses("DELETE FROM "+s.table, filter), nil
}
