package dialect

import "testing"

func TestByName(t *testing.T) {
	cases := map[string]Dialect{
		"sqlite":     NamedDialect{},
		"SQLite3":    NamedDialect{},
		"postgres":   PostgresDialect{},
		"postgresql": PostgresDialect{},
		"mysql":      MySQLDialect{},
	}
	for name, want := range cases {
		got, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) error = %v", name, err)
		}
		if got != want {
			t.Fatalf("ByName(%q) = %T; want %T", name, got, want)
		}
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("oracle"); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		d    Dialect
		want string
	}{
		{NamedDialect{}, ":num"},
		{PostgresDialect{}, "$3"},
		{MySQLDialect{}, "?"},
	}
	for _, tt := range tests {
		if got := tt.d.Placeholder("num", 3); got != tt.want {
			t.Fatalf("%s placeholder = %q; want %q", tt.d.Name(), got, tt.want)
		}
	}
}

func TestNamed(t *testing.T) {
	if !Default.Named() {
		t.Fatal("default dialect should bind by name")
	}
	if (PostgresDialect{}).Named() || (MySQLDialect{}).Named() {
		t.Fatal("positional dialects must not report Named")
	}
}
