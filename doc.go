// Package simplequery builds parameterized SELECT, INSERT, UPDATE and DELETE
// statements from ordered column and filter lists and runs them through
// database/sql.
//
// Statements can be built as immutable values:
//
//	stmt := simplequery.Update(simplequery.Fields{}.Set("num", 10)).
//		From("temp").
//		Where(simplequery.Eq("txt", "bar"))
//	res, err := simplequery.Exec(ctx, db, stmt)
//
// or through a Builder that keeps one draft between calls:
//
//	qb := simplequery.NewBuilder(db)
//	res, err := qb.Select().From("temp").Where(simplequery.Cond("num>", 1)).Exec(ctx)
//
// Column expressions and Raw filters are written into the SQL verbatim and are
// the caller's responsibility; everything else is bound as a parameter.
package simplequery
