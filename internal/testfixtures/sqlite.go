// Package testfixtures provides migrated temporary stores and helpers that
// populate them for integration-style tests.
package testfixtures

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/room-reservations/internal/persistence"
	"github.com/example/room-reservations/internal/persistence/store"
)

// SQLiteHarness exposes a store backed by a temporary SQLite file.
type SQLiteHarness struct {
	Store *store.Store
	Clock *Clock
	Path  string

	cleanup func()
}

// Counts is a snapshot of the number of rows per table.
type Counts struct {
	Categories   int64
	Rooms        int64
	Users        int64
	Reservations int64
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with tb.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "reservations.db")
	clock := NewClock(time.Time{})
	sqliteCfg := store.TempFileTestSQLiteConfig(path)

	s, err := store.Open(context.Background(), store.Config{
		Driver: store.DriverSQLite,
		SQLite: &sqliteCfg,
		Now:    clock.NowFunc(),
	})
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := s.Migrate(context.Background()); err != nil {
		_ = s.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Store: s,
		Clock: clock,
		Path:  path,
		cleanup: func() {
			_ = s.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// MustCreateRoom stores a room, creating its category first when categoryName
// is not empty.
func (h *SQLiteHarness) MustCreateRoom(tb testing.TB, name string, capacity int, categoryName string) persistence.Room {
	tb.Helper()
	ctx := context.Background()

	room := &persistence.Room{Name: name, Capacity: capacity}
	if categoryName != "" {
		category := &persistence.Category{Name: categoryName}
		if err := h.Store.CreateCategory(ctx, category); err != nil {
			tb.Fatalf("failed to create category %q: %v", categoryName, err)
		}
		category.AddRoom(room)
	}
	if err := h.Store.CreateRoom(ctx, room); err != nil {
		tb.Fatalf("failed to create room %q: %v", name, err)
	}
	return *room
}

// MustBook stores a user and a reservation of roomID over [start, end).
func (h *SQLiteHarness) MustBook(tb testing.TB, roomID uint, start, end time.Time) persistence.Reservation {
	tb.Helper()
	ctx := context.Background()

	user := &persistence.User{LastName: "Fixture", FirstName: "Test", Email: "fixture@example.com"}
	if err := h.Store.CreateUser(ctx, user); err != nil {
		tb.Fatalf("failed to create user: %v", err)
	}
	reservation := &persistence.Reservation{
		StartsAt: start,
		EndsAt:   end,
		Label:    "Fixture",
		RoomID:   roomID,
		User:     user,
	}
	if err := h.Store.CreateReservation(ctx, reservation); err != nil {
		tb.Fatalf("failed to create reservation: %v", err)
	}
	return *reservation
}

// Counts returns the current number of rows per table.
func (h *SQLiteHarness) Counts(tb testing.TB) Counts {
	tb.Helper()
	ctx := context.Background()

	var counts Counts
	var err error
	if counts.Categories, err = h.Store.CountCategories(ctx); err != nil {
		tb.Fatalf("failed to count categories: %v", err)
	}
	if counts.Rooms, err = h.Store.CountRooms(ctx); err != nil {
		tb.Fatalf("failed to count rooms: %v", err)
	}
	if counts.Users, err = h.Store.CountUsers(ctx); err != nil {
		tb.Fatalf("failed to count users: %v", err)
	}
	if counts.Reservations, err = h.Store.CountReservations(ctx); err != nil {
		tb.Fatalf("failed to count reservations: %v", err)
	}
	return counts
}

// At returns the given time of day on 2024-06-01 in UTC.
func At(hour, minute int) time.Time {
	return time.Date(2024, time.June, 1, hour, minute, 0, 0, time.UTC)
}
