package simplequery

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBuilderGetQuery(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		want string
	}{
		{"insert", NewBuilder(nil).Insert(Fields{}.Set("txt", "foo").Set("num", 1)).Into("temp"), "INSERT INTO temp (txt,num) VALUES (:txt,:num)"},
		{"select all", NewBuilder(nil).Select().From("temp"), "SELECT * FROM temp"},
		{"select alias", NewBuilder(nil).Select(As("num", "number")).From("temp"), "SELECT num AS number FROM temp"},
		{"update", NewBuilder(nil).Update(Fields{}.Set("a", 1)).From("t").Where(Eq("b", 2)), "UPDATE t SET a=:a WHERE b=:b"},
		{"delete", NewBuilder(nil).New("temp").Delete().Where(Cond("txt", "bar")), "DELETE FROM temp WHERE txt=:txt"},
		{"and where", NewBuilder(nil).New("t").Select().Where(Eq("a", 1)).AndWhere(Eq("b", 2)), "SELECT * FROM t WHERE a=:a AND b=:b"},
	}
	for _, tt := range tests {
		got, err := tt.b.GetQuery()
		if err != nil {
			t.Fatalf("%s: GetQuery returned error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: GetQuery = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestBuilderGetQueryDoesNotReset(t *testing.T) {
	qb := NewBuilder(nil).Select().From("t")
	first, _ := qb.GetQuery()
	second, _ := qb.GetQuery()
	if first != second || first != "SELECT * FROM t" {
		t.Fatalf("GetQuery changed the draft: %q then %q", first, second)
	}
}

func TestBuilderGetQueryUnset(t *testing.T) {
	got, err := NewBuilder(nil).From("t").GetQuery()
	if err != nil || got != "" {
		t.Fatalf("expected empty query, got %q, %v", got, err)
	}
}

func TestBuilderAndWhereWithoutWhere(t *testing.T) {
	qb := NewBuilder(nil).Select().From("t").AndWhere(Eq("a", 1))
	if _, err := qb.GetQuery(); !errors.Is(err, ErrAndWhereWithoutWhere) {
		t.Fatalf("expected ErrAndWhereWithoutWhere, got %v", err)
	}
	// A later Where does not hide the earlier misuse.
	qb.Where(Eq("a", 1))
	if _, err := qb.GetQuery(); !errors.Is(err, ErrAndWhereWithoutWhere) {
		t.Fatalf("expected sticky ErrAndWhereWithoutWhere, got %v", err)
	}
	// New starts over.
	if got, err := qb.New("t").Select().GetQuery(); err != nil || got != "SELECT * FROM t" {
		t.Fatalf("unexpected query after New: %q, %v", got, err)
	}
}

func TestBuilderStaleFiltersCarryOver(t *testing.T) {
	qb := NewBuilder(nil)
	qb.Select().From("t").Where(Eq("a", 1))
	got, _ := qb.Delete().GetQuery()
	if got != "DELETE FROM t WHERE a=:a" {
		t.Fatalf("expected filters to carry over without New, got %q", got)
	}
	got, _ = qb.New("t").Delete().GetQuery()
	if got != "DELETE FROM t" {
		t.Fatalf("expected New to clear filters, got %q", got)
	}
}

func TestBuilderExecResets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	qb := NewBuilder(db)
	mock.ExpectPrepare(regexp.QuoteMeta("UPDATE t SET a=:a WHERE b=:b")).
		ExpectExec().
		WithArgs(sql.Named("a", 1), sql.Named("b", 2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := qb.Update(Fields{}.Set("a", 1)).From("t").Where(Eq("b", 2)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if res.RowsAffected != 1 || res.Kind != KindUpdate {
		t.Fatalf("unexpected result: %+v", res)
	}

	if got, err := qb.GetQuery(); err != nil || got != "" {
		t.Fatalf("expected reset builder, got %q, %v", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuilderExecResetsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	failure := errors.New("constraint violation")
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO t (a) VALUES (:a)")).
		ExpectExec().
		WithArgs(sql.Named("a", "x")).
		WillReturnError(failure)

	qb := NewBuilder(db)
	_, err = qb.Insert(Fields{}.Set("a", "x")).Into("t").Exec(context.Background())
	if !errors.Is(err, failure) {
		t.Fatalf("expected driver error, got %v", err)
	}
	if got, _ := qb.GetQuery(); got != "" {
		t.Fatalf("expected reset builder after failure, got %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuilderExecNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	qb := NewBuilder(db)

	res, err := qb.From("t").Exec(context.Background())
	if err != nil || !res.Skipped || res.RowsAffected != 0 {
		t.Fatalf("expected skipped result for unset kind, got %+v, %v", res, err)
	}

	res, err = qb.Insert(nil).Into("t").Exec(context.Background())
	if err != nil || !res.Skipped || res.Kind != KindInsert {
		t.Fatalf("expected skipped result for empty insert, got %+v, %v", res, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("database was touched: %v", err)
	}
}

func TestBuilderExecTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPrepare(regexp.QuoteMeta("DELETE FROM other")).
		ExpectExec().
		WillReturnResult(sqlmock.NewResult(0, 3))

	res, err := NewBuilder(db).Delete().From("t").ExecTable(context.Background(), "other")
	if err != nil {
		t.Fatalf("ExecTable returned error: %v", err)
	}
	if res.RowsAffected != 3 {
		t.Fatalf("unexpected rows affected: %d", res.RowsAffected)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuilderExecUsageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	var missing *ErrMissingTable
	if _, err := NewBuilder(db).Select().Exec(context.Background()); !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingTable, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("database was touched: %v", err)
	}
}
