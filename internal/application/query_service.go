package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/room-reservations/internal/persistence"
)

// RoomReader captures the room reads needed by QueryService.
type RoomReader interface {
	GetRoom(ctx context.Context, id uint) (persistence.Room, error)
	ListRooms(ctx context.Context) ([]persistence.Room, error)
}

// ReservationReader captures the reservation reads needed by QueryService.
type ReservationReader interface {
	ListReservationsForRoom(ctx context.Context, roomID uint) ([]persistence.Reservation, error)
}

// Availability is the booking status of one room.
type Availability struct {
	Room         persistence.Room
	Reservations []persistence.Reservation
	// Available is true when no reservation references the room at all.
	Available bool
}

// QueryService answers read-only questions about rooms and their bookings.
type QueryService struct {
	rooms        RoomReader
	reservations ReservationReader
	logger       *slog.Logger
}

// NewQueryService constructs a query service with the provided dependencies.
func NewQueryService(rooms RoomReader, reservations ReservationReader) *QueryService {
	return NewQueryServiceWithLogger(rooms, reservations, nil)
}

// NewQueryServiceWithLogger constructs a query service with a specified logger.
func NewQueryServiceWithLogger(rooms RoomReader, reservations ReservationReader, logger *slog.Logger) *QueryService {
	return &QueryService{rooms: rooms, reservations: reservations, logger: defaultLogger(logger)}
}

func (s *QueryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "QueryService", operation, attrs...)
}

// ListRooms returns every room in identifier order with its category loaded.
// An empty catalog yields an empty slice and no error.
func (s *QueryService) ListRooms(ctx context.Context) (rooms []persistence.Room, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.rooms == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListRooms")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(rooms)).InfoContext(ctx, "rooms listed")
	}()

	rooms, err = s.rooms.ListRooms(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// GetRoom returns one room or ErrNotFound.
func (s *QueryService) GetRoom(ctx context.Context, roomID uint) (room persistence.Room, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	room, err = s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		err = mapRepoError(err)
		if !errors.Is(err, ErrNotFound) {
			s.loggerWith(ctx, "GetRoom", "room_id", roomID).
				ErrorContext(ctx, "failed to get room", "error", err, "error_kind", ErrorKind(err))
		}
	}
	return
}

// CheckAvailability looks the room up and lists every reservation that
// references it, ordered by start then identifier. No particular window is
// compared; a room with any booking is reported as unavailable.
func (s *QueryService) CheckAvailability(ctx context.Context, roomID uint) (availability Availability, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.rooms == nil || s.reservations == nil {
		err = fmt.Errorf("query repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "CheckAvailability", "room_id", roomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to check availability", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"available", availability.Available,
			"reservation_count", len(availability.Reservations),
		).InfoContext(ctx, "availability checked")
	}()

	var room persistence.Room
	room, err = s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	var reservations []persistence.Reservation
	reservations, err = s.reservations.ListReservationsForRoom(ctx, room.ID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	availability = Availability{
		Room:         room,
		Reservations: reservations,
		Available:    len(reservations) == 0,
	}
	return
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrInvalidFormat):
		return err
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate),
		errors.Is(err, persistence.ErrConstraintViolation):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
