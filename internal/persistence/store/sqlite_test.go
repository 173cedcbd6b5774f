package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/example/room-reservations/internal/persistence"
)

func TestConnectionManager_ConnectionString(t *testing.T) {
	t.Run("appends pragmas", func(t *testing.T) {
		cm := NewConnectionManager(DefaultSQLiteConfig("rooms.db"))
		dsn := cm.ConnectionString()

		if !strings.HasPrefix(dsn, "rooms.db?") {
			t.Fatalf("expected DSN to start with the path, got %q", dsn)
		}
		for _, pragma := range []string{"busy_timeout%285000%29", "foreign_keys%281%29", "journal_mode%28WAL%29", "synchronous%28NORMAL%29"} {
			if !strings.Contains(dsn, "_pragma="+pragma) {
				t.Errorf("expected %s in %q", pragma, dsn)
			}
		}
	})

	t.Run("keeps existing query parameters", func(t *testing.T) {
		cfg := TempFileTestSQLiteConfig("file:rooms.db?cache=shared")
		dsn := NewConnectionManager(cfg).ConnectionString()
		if !strings.HasPrefix(dsn, "file:rooms.db?cache=shared&_pragma=") {
			t.Fatalf("unexpected DSN %q", dsn)
		}
	})
}

func TestConnectionManager_ValidateConfig(t *testing.T) {
	valid := DefaultSQLiteConfig("rooms.db")

	tests := []struct {
		name   string
		mutate func(*SQLiteConfig)
		ok     bool
	}{
		{"default config", func(*SQLiteConfig) {}, true},
		{"empty DSN", func(c *SQLiteConfig) { c.DSN = "" }, false},
		{"negative busy timeout", func(c *SQLiteConfig) { c.BusyTimeout = -time.Second }, false},
		{"unknown journal mode", func(c *SQLiteConfig) { c.JournalMode = "FAST" }, false},
		{"unknown synchronous mode", func(c *SQLiteConfig) { c.Synchronous = "SOMETIMES" }, false},
		{"negative pool size", func(c *SQLiteConfig) { c.MaxOpenConns = -1 }, false},
		{"negative lifetime", func(c *SQLiteConfig) { c.ConnMaxLifetime = -time.Minute }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := NewConnectionManager(cfg).ValidateConfig()
			if tt.ok && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestConnectionManager_CreateDatabaseFile(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "rooms.db")
		if err := NewConnectionManager(DefaultSQLiteConfig(path)).CreateDatabaseFile(); err != nil {
			t.Fatalf("CreateDatabaseFile failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected database file to exist: %v", err)
		}
	})

	t.Run("skips in-memory databases", func(t *testing.T) {
		for _, dsn := range []string{":memory:", "file:rooms?mode=memory&cache=shared"} {
			if err := NewConnectionManager(DefaultSQLiteConfig(dsn)).CreateDatabaseFile(); err != nil {
				t.Fatalf("CreateDatabaseFile(%q) failed: %v", dsn, err)
			}
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, persistence.ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, persistence.ErrDuplicate},
		{"translated foreign key", gorm.ErrForeignKeyViolated, persistence.ErrConstraintViolation},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: categories.name (2067)"), persistence.ErrDuplicate},
		{"postgres unique", errors.New(`ERROR: duplicate key value violates unique constraint "idx_categories_name"`), persistence.ErrDuplicate},
		{"mysql unique", errors.New("Error 1062: Duplicate entry 'x' for key 'name'"), persistence.ErrDuplicate},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), persistence.ErrConstraintViolation},
		{"already mapped", fmt.Errorf("wrapped: %w", persistence.ErrNotFound), persistence.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(tt.in); !errors.Is(got, tt.want) {
				t.Fatalf("mapError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	t.Run("passes other errors through", func(t *testing.T) {
		other := errors.New("disk I/O error")
		if got := mapError(other); got != other {
			t.Fatalf("expected error to be returned unchanged, got %v", got)
		}
		if mapError(nil) != nil {
			t.Fatalf("expected nil for nil input")
		}
	})
}
