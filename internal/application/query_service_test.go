package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/room-reservations/internal/persistence"
	"github.com/example/room-reservations/internal/testfixtures"
)

func TestQueryService_ListRooms(t *testing.T) {
	t.Run("empty catalog is not an error", func(t *testing.T) {
		svc := NewQueryService(newGatewayStub(), nil)

		rooms, err := svc.ListRooms(context.Background())
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(rooms) != 0 {
			t.Fatalf("expected no rooms, got %d", len(rooms))
		}
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		stub := newGatewayStub()
		stub.listRoomsErr = errors.New("disk failure")
		svc := NewQueryService(stub, stub)

		if _, err := svc.ListRooms(context.Background()); err == nil || ErrorKind(err) != "unexpected" {
			t.Fatalf("expected unexpected error, got %v", err)
		}
	})

	t.Run("lists persisted rooms with categories", func(t *testing.T) {
		h := testfixtures.NewSQLiteHarness(t)
		first := h.MustCreateRoom(t, "Salle 1", 30, "Informatique")
		second := h.MustCreateRoom(t, "Salle annexe", 8, "")
		svc := NewQueryService(h.Store, h.Store)

		rooms, err := svc.ListRooms(context.Background())
		if err != nil {
			t.Fatalf("ListRooms failed: %v", err)
		}
		if len(rooms) != 2 || rooms[0].ID != first.ID || rooms[1].ID != second.ID {
			t.Fatalf("unexpected rooms: %#v", rooms)
		}
		if rooms[0].CategoryName() != "Informatique" || rooms[1].CategoryName() != "" {
			t.Fatalf("unexpected categories: %q, %q", rooms[0].CategoryName(), rooms[1].CategoryName())
		}
	})
}

func TestQueryService_CheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown room is not found", func(t *testing.T) {
		stub := newGatewayStub()
		svc := NewQueryService(stub, stub)

		_, err := svc.CheckAvailability(ctx, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("room without reservations is available", func(t *testing.T) {
		stub := newGatewayStub()
		room := stub.addRoom("Salle 1", 30)
		svc := NewQueryService(stub, stub)

		availability, err := svc.CheckAvailability(ctx, room.ID)
		if err != nil {
			t.Fatalf("CheckAvailability failed: %v", err)
		}
		if !availability.Available || len(availability.Reservations) != 0 {
			t.Fatalf("expected available room, got %#v", availability)
		}
		if availability.Room.Name != "Salle 1" {
			t.Fatalf("unexpected room %#v", availability.Room)
		}
	})

	t.Run("any reservation makes the room unavailable", func(t *testing.T) {
		h := testfixtures.NewSQLiteHarness(t)
		room := h.MustCreateRoom(t, "Salle 1", 30, "Informatique")
		other := h.MustCreateRoom(t, "Salle 2", 50, "Conférence")
		past := time.Date(2001, time.January, 1, 8, 0, 0, 0, time.UTC)
		h.MustBook(t, room.ID, testfixtures.At(14, 0), testfixtures.At(15, 0))
		h.MustBook(t, room.ID, past, past.Add(time.Hour))
		h.MustBook(t, other.ID, testfixtures.At(9, 0), testfixtures.At(10, 0))
		svc := NewQueryService(h.Store, h.Store)

		availability, err := svc.CheckAvailability(ctx, room.ID)
		if err != nil {
			t.Fatalf("CheckAvailability failed: %v", err)
		}
		if availability.Available {
			t.Fatalf("expected room to be unavailable")
		}
		if len(availability.Reservations) != 2 {
			t.Fatalf("expected 2 reservations, got %d", len(availability.Reservations))
		}
		if !availability.Reservations[0].StartsAt.Equal(past) {
			t.Fatalf("expected reservations ordered by start, got %v first", availability.Reservations[0].StartsAt)
		}
	})

	t.Run("reservation lookup failure is reported", func(t *testing.T) {
		stub := newGatewayStub()
		room := stub.addRoom("Salle 1", 30)
		stub.listReservationsErr = persistence.ErrConstraintViolation
		svc := NewQueryService(stub, stub)

		if _, err := svc.CheckAvailability(ctx, room.ID); !errors.Is(err, ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}
	})

	t.Run("missing repositories are reported", func(t *testing.T) {
		if _, err := NewQueryService(nil, nil).CheckAvailability(ctx, 1); err == nil {
			t.Fatalf("expected configuration error")
		}
	})
}

func TestQueryService_GetRoom(t *testing.T) {
	stub := newGatewayStub()
	room := stub.addRoom("Salle 2", 50)
	svc := NewQueryService(stub, stub)

	got, err := svc.GetRoom(context.Background(), room.ID)
	if err != nil || got.ID != room.ID {
		t.Fatalf("expected room %d, got %#v (%v)", room.ID, got, err)
	}
	if _, err := svc.GetRoom(context.Background(), room.ID+1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
