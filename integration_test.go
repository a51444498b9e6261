package simplequery

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// Every pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE temp (
			txt TEXT DEFAULT 'default',
			num INTEGER DEFAULT 0,
			num2 INTEGER DEFAULT 10
		)
	`)
	if err != nil {
		t.Fatalf("failed to create temp table: %v", err)
	}
	return db
}

func TestIntegrationRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	qb := NewBuilder(db)

	res, err := qb.Insert(Fields{}.Set("txt", "foo").Set("num", 1)).Into("temp").Exec(ctx)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Fatalf("expected 1 affected row, got %d", res.RowsAffected)
	}

	res, err = qb.Select().From("temp").Where(Eq("txt", "foo")).Exec(ctx)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	want := []Row{{"txt": "foo", "num": int64(1), "num2": int64(10)}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Fatalf("unexpected rows: %#v", res.Rows)
	}

	if got, _ := qb.GetQuery(); got != "" {
		t.Fatalf("builder not reset after Exec: %q", got)
	}

	res, err = qb.Insert(Fields{}.Set("txt", "bar")).Into("temp").Exec(ctx)
	if err != nil || res.RowsAffected != 1 {
		t.Fatalf("second insert failed: %+v, %v", res, err)
	}

	res, err = qb.Select(As("num", "number")).From("temp").Where(Cond("txt", "bar")).Exec(ctx)
	if err != nil {
		t.Fatalf("aliased select failed: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0]["number"] != int64(0) {
		t.Fatalf("unexpected aliased rows: %#v", res.Rows)
	}

	res, err = qb.Update(Fields{}.Set("num", 10000)).From("temp").Where(Eq("txt", "bar")).Exec(ctx)
	if err != nil || res.RowsAffected != 1 {
		t.Fatalf("update failed: %+v, %v", res, err)
	}

	res, err = qb.Select().From("temp").Where(Cond("num>=", 10000)).Exec(ctx)
	if err != nil || len(res.Rows) != 1 || res.Rows[0]["txt"] != "bar" {
		t.Fatalf("range select failed: %#v, %v", res.Rows, err)
	}

	res, err = qb.Delete().From("temp").Where(Eq("txt", "bar")).Exec(ctx)
	if err != nil || res.RowsAffected != 1 {
		t.Fatalf("delete failed: %+v, %v", res, err)
	}

	res, err = qb.Select().From("temp").Exec(ctx)
	if err != nil || len(res.Rows) != 1 {
		t.Fatalf("expected one remaining row: %#v, %v", res.Rows, err)
	}
}

func TestIntegrationQueryStructs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	type Temp struct {
		Txt  string `db:"txt"`
		Num  int64  `db:"num"`
		Num2 int64  `db:"num2"`
	}

	ctx := context.Background()
	for _, row := range []Temp{{Txt: "a", Num: 1}, {Txt: "b", Num: 2}, {Txt: "c", Num: 3}} {
		fields, err := FieldsFromStruct(row, "txt", "num")
		if err != nil {
			t.Fatalf("FieldsFromStruct: %v", err)
		}
		if _, err := Exec(ctx, db, Insert(fields).Into("temp")); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	stmt := Select().From("temp").Where(Gt("num", 1)).AndWhere(Raw("txt <> 'c'"))
	got, err := Query[Temp](ctx, db, stmt)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	want := []Temp{{Txt: "b", Num: 2, Num2: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestIntegrationTransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if _, err := Exec(ctx, tx, Insert(Fields{}.Set("txt", "tmp")).Into("temp")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	res, err := Exec(ctx, db, Select().From("temp"))
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(res.Rows) != 0 {
		t.Fatalf("expected rolled back insert, got %#v", res.Rows)
	}
}
