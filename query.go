package simplequery

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kisielk/sqlstruct"
)

// Query executes a SELECT statement and scans each row into a T.
//
// T must be a struct or a pointer to a struct; columns are matched to fields
// by sqlstruct rules (`db` tag, snake_case otherwise). Columns without a
// matching field are ignored. Query returns ErrKindMismatch for statements
// other than SELECT.
func Query[T any](ctx context.Context, db Executor, stmt Statement, opts ...Option) ([]T, error) {
	if stmt == nil || stmt.Kind() != KindSelect {
		got := KindNone
		if stmt != nil {
			got = stmt.Kind()
		}
		return nil, NewErrKindMismatch(KindSelect, got)
	}

	cfg := newConfig(opts)
	r := newRenderer(cfg.Dialect)
	query, err := stmt.render(r)
	if err != nil {
		return nil, err
	}
	args := r.args()
	logSQL(cfg.Logger, query, args)

	prepared, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("simplequery: prepare %s: %w", KindSelect, err)
	}
	defer prepared.Close()

	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("simplequery: execute %s: %w", KindSelect, err)
	}
	defer rows.Close()

	typ := reflect.TypeOf((*T)(nil)).Elem()
	isPtr := typ.Kind() == reflect.Pointer
	if isPtr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("simplequery: Query requires a struct type, got %s", typ)
	}

	var out []T
	for rows.Next() {
		pv := reflect.New(typ)
		if err := sqlstruct.Scan(pv.Interface(), rows); err != nil {
			return nil, err
		}
		if isPtr {
			out = append(out, pv.Interface().(T))
		} else {
			out = append(out, pv.Elem().Interface().(T))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
