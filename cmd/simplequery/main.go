// Command simplequery builds and runs parameterized statements from the
// command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/guadalsistema/go-simple-query/connect"
	"github.com/guadalsistema/go-simple-query/internal/config"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

// app carries state shared by subcommands once flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	url      string
	logLevel string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "simplequery",
		Short:         "Build and run parameterized SQL statements",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.url, "url", "", "database URL (overrides SIMPLEQUERY_DATABASE_URL)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newDemoCommand(a))
	root.AddCommand(newQueryCommand(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		return err
	}
	if a.url != "" {
		cfg.DatabaseURL = a.url
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	return nil
}

func (a *app) open() (*connect.DB, error) {
	db, err := connect.Open(a.cfg.DatabaseURL, connect.Config{Logger: a.logger})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.cfg.DatabaseURL, err)
	}
	a.logger.Debug("database opened", "dialect", db.Dialect().Name())
	return db, nil
}
