// Package dialect describes how bound parameters are spelled in SQL text for
// each supported database.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect renders parameter placeholders.
// Implementations receive the parameter name and its 1-based position in the
// statement; named dialects ignore the position and positional ones the name.
type Dialect interface {
	Name() string
	Placeholder(name string, position int) string
	// Named reports whether arguments are bound by name (sql.Named) rather
	// than by position.
	Named() bool
}

// Default is used when no dialect is configured.
var Default Dialect = NamedDialect{}

// NamedDialect renders colon-prefixed named placeholders (:name). SQLite
// drivers accept them directly.
type NamedDialect struct{}

func (NamedDialect) Name() string { return "sqlite" }

func (NamedDialect) Placeholder(name string, _ int) string { return ":" + name }

func (NamedDialect) Named() bool { return true }

// PostgresDialect renders dollar-prefixed positional placeholders.
type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) Placeholder(_ string, position int) string {
	return fmt.Sprintf("$%d", position)
}

func (PostgresDialect) Named() bool { return false }

// MySQLDialect renders question mark placeholders.
type MySQLDialect struct{}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) Placeholder(_ string, _ int) string { return "?" }

func (MySQLDialect) Named() bool { return false }

// ByName returns the dialect matching name.
// Recognized names: "sqlite"/"sqlite3", "postgres"/"postgresql" and "mysql".
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return NamedDialect{}, nil
	case "postgres", "postgresql":
		return PostgresDialect{}, nil
	case "mysql":
		return MySQLDialect{}, nil
	default:
		return nil, fmt.Errorf("unknown dialect name: %s", name)
	}
}
