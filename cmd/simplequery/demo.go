package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	simplequery "github.com/guadalsistema/go-simple-query"
)

const demoSchema = `CREATE TABLE IF NOT EXISTS temp (
	txt TEXT DEFAULT 'default',
	num INTEGER DEFAULT 0,
	num2 INTEGER DEFAULT 10
)`

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a short insert/select/update/delete walkthrough on table temp",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if _, err := db.SQL().ExecContext(ctx, demoSchema); err != nil {
				return fmt.Errorf("create table: %w", err)
			}
			return runDemo(ctx, cmd.OutOrStdout(), db.Builder())
		},
	}
}

type demoStep struct {
	title string
	run   func(*simplequery.Builder) *simplequery.Builder
	// want is the expected number of affected rows; -1 for queries.
	want int64
}

var demoSteps = []demoStep{
	{"insert row", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Insert(simplequery.Fields{}.Set("txt", "foo").Set("num", 1)).Into("temp")
	}, 1},
	{"select all", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Select().From("temp")
	}, -1},
	{"select some", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Select(simplequery.Cols("txt")...).From("temp")
	}, -1},
	{"select some as", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Select(simplequery.As("num", "number")).From("temp")
	}, -1},
	{"insert another row", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Insert(simplequery.Fields{}.Set("txt", "bar")).Into("temp")
	}, 1},
	{"select where", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Select().From("temp").Where(simplequery.Eq("txt", "bar"))
	}, -1},
	{"update where", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Update(simplequery.Fields{}.Set("num", 10000)).From("temp").Where(simplequery.Eq("txt", "bar"))
	}, 1},
	{"select all", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Select().From("temp")
	}, -1},
	{"delete where", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Delete().From("temp").Where(simplequery.Eq("txt", "bar"))
	}, 1},
	{"select all", func(b *simplequery.Builder) *simplequery.Builder {
		return b.Select().From("temp")
	}, -1},
}

func runDemo(ctx context.Context, w io.Writer, qb *simplequery.Builder) error {
	header := color.New(color.FgCyan, color.Bold).SprintFunc()
	for _, step := range demoSteps {
		fmt.Fprintf(w, "%s\n", header("> "+step.title))
		res, err := step.run(qb).Exec(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", step.title, err)
		}
		if step.want >= 0 {
			if res.RowsAffected != step.want {
				return fmt.Errorf("%s: expected %d affected rows, got %d", step.title, step.want, res.RowsAffected)
			}
			fmt.Fprintf(w, "affected rows: %d\n", res.RowsAffected)
			continue
		}
		printRows(w, res)
	}
	return nil
}

func printRows(w io.Writer, res simplequery.Result) {
	for i, row := range res.Rows {
		cols := res.Columns
		if len(cols) == 0 {
			for c := range row {
				cols = append(cols, c)
			}
			sort.Strings(cols)
		}
		parts := make([]string, len(cols))
		for j, c := range cols {
			parts[j] = fmt.Sprintf("%s=%v", c, row[c])
		}
		fmt.Fprintf(w, "[%d] %s\n", i, strings.Join(parts, " "))
	}
	fmt.Fprintf(w, "%d row(s)\n", len(res.Rows))
}
