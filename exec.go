package simplequery

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/guadalsistema/go-simple-query/dialect"
)

// Executor prepares statements against a database. *sql.DB, *sql.Tx and
// *sql.Conn all satisfy it, so running inside a transaction only requires
// passing the transaction.
type Executor interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Config controls how statements are rendered and traced when executed.
type Config struct {
	// Dialect selects the placeholder style. Nil means named placeholders.
	Dialect dialect.Dialect
	// Logger is optional; when set every executed statement is traced at
	// debug level.
	Logger *slog.Logger
}

// Option is a functional option for configuring execution.
type Option func(*Config)

// WithDialect sets the placeholder dialect.
func WithDialect(d dialect.Dialect) Option {
	return func(c *Config) {
		c.Dialect = d
	}
}

// WithLogger sets the logger used to trace statements.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{Dialect: dialect.Default}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Dialect == nil {
		cfg.Dialect = dialect.Default
	}
	return cfg
}

// Row is one fetched row keyed by column name. Text returned by the driver as
// []byte is converted to string.
type Row map[string]any

// Result is the outcome of Exec.
type Result struct {
	Kind Kind
	// Columns and Rows are set for SELECT statements.
	Columns []string
	Rows    []Row
	// RowsAffected is set for INSERT, UPDATE and DELETE statements.
	RowsAffected int64
	// Skipped reports that there was nothing to execute: no statement, or an
	// INSERT without fields. The database was not contacted.
	Skipped bool
}

// Exec renders stmt, prepares it, binds its parameters and executes it.
//
// SELECT statements return their rows; other statements return the number of
// affected rows. A nil statement or an INSERT without fields is a no-op and
// returns a Result with Skipped set. Errors from the database are returned
// wrapped, without retry.
func Exec(ctx context.Context, db Executor, stmt Statement, opts ...Option) (Result, error) {
	cfg := newConfig(opts)

	if isNoop(stmt) {
		kind := KindNone
		if stmt != nil {
			kind = stmt.Kind()
		}
		if cfg.Logger != nil {
			cfg.Logger.Debug("simplequery: nothing to execute", "kind", kind.String())
		}
		return Result{Kind: kind, Skipped: true}, nil
	}

	kind := stmt.Kind()
	r := newRenderer(cfg.Dialect)
	query, err := stmt.render(r)
	if err != nil {
		return Result{Kind: kind}, err
	}
	args := r.args()
	logSQL(cfg.Logger, query, args)

	prepared, err := db.PrepareContext(ctx, query)
	if err != nil {
		return Result{Kind: kind}, fmt.Errorf("simplequery: prepare %s: %w", kind, err)
	}
	defer prepared.Close()

	if kind == KindSelect {
		rows, err := prepared.QueryContext(ctx, args...)
		if err != nil {
			return Result{Kind: kind}, fmt.Errorf("simplequery: execute %s: %w", kind, err)
		}
		defer rows.Close()

		cols, data, err := fetchAll(rows)
		if err != nil {
			return Result{Kind: kind}, fmt.Errorf("simplequery: fetch rows: %w", err)
		}
		return Result{Kind: kind, Columns: cols, Rows: data}, nil
	}

	res, err := prepared.ExecContext(ctx, args...)
	if err != nil {
		return Result{Kind: kind}, fmt.Errorf("simplequery: execute %s: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Result{Kind: kind}, fmt.Errorf("simplequery: rows affected: %w", err)
	}
	return Result{Kind: kind, RowsAffected: n}, nil
}

func isNoop(stmt Statement) bool {
	if stmt == nil {
		return true
	}
	if ins, ok := stmt.(InsertQuery); ok && len(ins.fields) == 0 {
		return true
	}
	return false
}

func fetchAll(rows *sql.Rows) ([]string, []Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		targets := make([]any, len(cols))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, out, nil
}

func logSQL(logger *slog.Logger, query string, args []any) {
	if logger == nil {
		return
	}
	logger.Debug("simplequery: executing", "sql", query, "args_len", len(args))
}
