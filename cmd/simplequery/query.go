package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	simplequery "github.com/guadalsistema/go-simple-query"
	"github.com/guadalsistema/go-simple-query/dialect"
)

type queryFlags struct {
	kind  string
	table string
	cols  []string
	sets  []string
	where []string
	raw   []string
	exec  bool
}

func newQueryCommand(a *app) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Build a statement from flags, print it and optionally run it",
		Example: `  simplequery query --kind select --table temp --col txt --col num:number --where 'num>=2'
  simplequery query --kind update --table temp --set num=3 --where txt=bar --exec`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stmt, err := f.statement()
			if err != nil {
				return err
			}
			if !f.exec {
				return printStatement(cmd.OutOrStdout(), stmt, nil)
			}

			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := printStatement(cmd.OutOrStdout(), stmt, db.Dialect()); err != nil {
				return err
			}
			res, err := db.Exec(cmd.Context(), stmt)
			if err != nil {
				return err
			}
			switch {
			case res.Skipped:
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to execute")
			case res.Kind == simplequery.KindSelect:
				printRows(cmd.OutOrStdout(), res)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "affected rows: %d\n", res.RowsAffected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.kind, "kind", "select", "statement kind: select, insert, update or delete")
	cmd.Flags().StringVar(&f.table, "table", "", "target table")
	cmd.Flags().StringArrayVar(&f.cols, "col", nil, "select column, optionally aliased as expr:alias (repeatable)")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "column=value written by insert or update (repeatable)")
	cmd.Flags().StringArrayVar(&f.where, "where", nil, "filter such as txt=foo or num>=2 (repeatable)")
	cmd.Flags().StringArrayVar(&f.raw, "raw", nil, "raw SQL filter fragment, inserted verbatim (repeatable)")
	cmd.Flags().BoolVar(&f.exec, "exec", false, "execute the statement against --url")
	return cmd
}

func (f *queryFlags) statement() (simplequery.Statement, error) {
	filters, err := parseFilters(f.where)
	if err != nil {
		return nil, err
	}
	for _, r := range f.raw {
		filters = append(filters, simplequery.Raw(r))
	}

	switch strings.ToLower(f.kind) {
	case "select":
		return simplequery.Select(parseColumns(f.cols)...).From(f.table).Where(filters...), nil
	case "insert":
		fields, err := parseFields(f.sets)
		if err != nil {
			return nil, err
		}
		return simplequery.Insert(fields).Into(f.table), nil
	case "update":
		fields, err := parseFields(f.sets)
		if err != nil {
			return nil, err
		}
		return simplequery.Update(fields).From(f.table).Where(filters...), nil
	case "delete":
		return simplequery.Delete().From(f.table).Where(filters...), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", f.kind)
	}
}

func parseColumns(values []string) []simplequery.Column {
	cols := make([]simplequery.Column, 0, len(values))
	for _, s := range values {
		expr, alias, _ := strings.Cut(s, ":")
		cols = append(cols, simplequery.As(expr, alias))
	}
	return cols
}

func parseFields(values []string) (simplequery.Fields, error) {
	var fields simplequery.Fields
	for _, s := range values {
		col, val, ok := strings.Cut(s, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --set %q, want column=value", s)
		}
		fields = fields.Set(col, val)
	}
	return fields, nil
}

// parseFilters reads expressions of the form <column><operator><value>. The
// operator is the first run of '<', '>' and '=' characters and may use any
// suffix accepted by simplequery.Cond.
func parseFilters(values []string) ([]simplequery.Filter, error) {
	var filters []simplequery.Filter
	for _, s := range values {
		start := strings.IndexAny(s, "<>=")
		if start <= 0 {
			return nil, fmt.Errorf("invalid --where %q, want column<op>value", s)
		}
		end := start
		for end < len(s) && strings.ContainsRune("<>=", rune(s[end])) {
			end++
		}
		key := s[:end]
		if col, _, _ := simplequery.ParseKey(key); col != strings.TrimSpace(s[:start]) {
			return nil, fmt.Errorf("invalid operator %q in --where %q", s[start:end], s)
		}
		filters = append(filters, simplequery.Cond(key, s[end:]))
	}
	return filters, nil
}

// printStatement prints stmt as rendered for d, which is what Exec sends to
// the database. A nil d prints the named form.
func printStatement(w io.Writer, stmt simplequery.Statement, d dialect.Dialect) error {
	query, params, err := simplequery.Render(stmt, d)
	if err != nil {
		return err
	}
	label := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", label("SQL:"), query)
	for i, p := range params {
		fmt.Fprintf(w, "%s %d %s = %v (%s)\n", label("param"), i+1, p.Name, p.Value, p.Type)
	}
	return nil
}
