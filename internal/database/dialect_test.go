package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("DSN", func(t *testing.T) {
		if got := dialect.DSN(DialectConfig{Path: "revealhub.db"}); got != "revealhub.db" {
			t.Errorf("DSN() = %v, want revealhub.db", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "postgres" {
			t.Errorf("MigrationsSubdir() = %v, want postgres", got)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "mysql" {
			t.Errorf("MigrationsSubdir() = %v, want mysql", got)
		}
	})

	t.Run("DSN adds multiStatements", func(t *testing.T) {
		got := dialect.DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/revealhub"})
		if !strings.Contains(got, "?multiStatements=true") {
			t.Errorf("DSN() = %v, expected multiStatements to be appended", got)
		}
		if !strings.Contains(got, "parseTime=true") {
			t.Errorf("DSN() = %v, expected parseTime to be appended", got)
		}
	})

	t.Run("DSN appends to existing params", func(t *testing.T) {
		got := dialect.DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/revealhub?charset=utf8mb4"})
		if !strings.Contains(got, "&multiStatements=true") {
			t.Errorf("DSN() = %v, expected multiStatements appended with &", got)
		}
	})

	t.Run("DSN keeps explicit multiStatements", func(t *testing.T) {
		url := "user:pass@tcp(localhost:3306)/revealhub?multiStatements=false"
		if got := dialect.DSN(DialectConfig{URL: url}); got != url {
			t.Errorf("DSN() = %v, want %v unchanged", got, url)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM reveals WHERE id = ?",
			expected: "SELECT * FROM reveals WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM reveals WHERE id = ?",
			expected: "SELECT * FROM reveals WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO favorites (user_id, reveal_id) VALUES (?, ?)",
			expected: "INSERT INTO favorites (user_id, reveal_id) VALUES ($1, $2)",
		},
		{
			name:     "PostgreSQL no placeholders",
			dialect:  NewPostgresDialect(),
			query:    "SELECT COUNT(*) FROM high_scores",
			expected: "SELECT COUNT(*) FROM high_scores",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE reveals SET name = ?, category = ? WHERE id = ?",
			expected: "UPDATE reveals SET name = ?, category = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(tt.query); got != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", got, tt.expected)
			}
		})
	}
}
