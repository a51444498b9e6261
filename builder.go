package simplequery

import "context"

// Builder is a reusable, chainable query session over one database handle.
//
// It holds at most one statement under construction. New and every Exec
// clear the draft; Select, Insert, Update and Delete only switch the kind, so
// filters or fields left over from an unfinished chain carry into the next
// one unless New is called first.
//
// A Builder is not safe for concurrent use. Use one per goroutine, or build
// immutable statements with Select, Insert, Update and Delete and pass them to
// Exec directly.
type Builder struct {
	db   Executor
	opts []Option

	kind    Kind
	table   string
	columns []Column
	fields  Fields
	filters Filters
	err     error
}

// NewBuilder returns a Builder executing against db.
func NewBuilder(db Executor, opts ...Option) *Builder {
	return &Builder{db: db, opts: opts}
}

func (b *Builder) clean() {
	b.kind = KindNone
	b.table = ""
	b.columns = nil
	b.fields = nil
	b.filters = nil
	b.err = nil
}

// New discards any draft and starts a fresh one on table.
func (b *Builder) New(table string) *Builder {
	b.clean()
	b.table = table
	return b
}

// Select switches the draft to a SELECT of cols; no cols selects all columns.
func (b *Builder) Select(cols ...Column) *Builder {
	b.columns = append([]Column(nil), cols...)
	b.kind = KindSelect
	return b
}

// Insert switches the draft to an INSERT of fields.
func (b *Builder) Insert(fields Fields) *Builder {
	b.fields = append(Fields(nil), fields...)
	b.kind = KindInsert
	return b
}

// Update switches the draft to an UPDATE writing fields.
func (b *Builder) Update(fields Fields) *Builder {
	b.fields = append(Fields(nil), fields...)
	b.kind = KindUpdate
	return b
}

// Delete switches the draft to a DELETE.
func (b *Builder) Delete() *Builder {
	b.kind = KindDelete
	return b
}

// From sets the target table.
func (b *Builder) From(table string) *Builder {
	b.table = table
	return b
}

// Into sets the target table. It is identical to From.
func (b *Builder) Into(table string) *Builder {
	return b.From(table)
}

// Where replaces the filters. Calling it without filters removes the WHERE
// clause.
func (b *Builder) Where(filters ...Filter) *Builder {
	b.filters = where(filters)
	return b
}

// AndWhere merges filters into those set by Where. Calling it before Where is
// a usage error reported by GetQuery and Exec as ErrAndWhereWithoutWhere.
func (b *Builder) AndWhere(filters ...Filter) *Builder {
	b.filters, b.err = andWhere(b.filters, b.err, filters)
	return b
}

// Statement returns the draft as an immutable Statement, or nil when no kind
// has been chosen. The draft is left untouched.
func (b *Builder) Statement() (Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	switch b.kind {
	case KindSelect:
		return SelectQuery{table: b.table, columns: b.columns, filters: b.filters}, nil
	case KindInsert:
		return InsertQuery{table: b.table, fields: b.fields}, nil
	case KindUpdate:
		return UpdateQuery{table: b.table, fields: b.fields, filters: b.filters}, nil
	case KindDelete:
		return DeleteQuery{table: b.table, filters: b.filters}, nil
	default:
		return nil, nil
	}
}

// GetQuery renders the draft with named placeholders without executing it.
// It returns "" when no kind has been chosen and never resets the draft.
func (b *Builder) GetQuery() (string, error) {
	stmt, err := b.Statement()
	if err != nil || stmt == nil {
		return "", err
	}
	query, _, err := stmt.ToSQL()
	return query, err
}

// Exec executes the draft and resets the Builder, whatever the outcome.
// See the package-level Exec for the result semantics.
func (b *Builder) Exec(ctx context.Context) (Result, error) {
	defer b.clean()
	stmt, err := b.Statement()
	if err != nil {
		return Result{Kind: b.kind}, err
	}
	return Exec(ctx, b.db, stmt, b.opts...)
}

// ExecTable sets the target table and executes the draft.
func (b *Builder) ExecTable(ctx context.Context, table string) (Result, error) {
	b.table = table
	return b.Exec(ctx)
}
