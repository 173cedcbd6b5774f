package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/room-reservations/internal/persistence"
	"github.com/example/room-reservations/internal/scheduler"
)

// DefaultReservationLabel is the label given to every booking made from the console.
const DefaultReservationLabel = "Réunion"

// BookingRequest carries the raw console input for a new reservation. Start
// and End use TimestampLayout.
type BookingRequest struct {
	LastName  string
	FirstName string
	Email     string
	RoomID    uint
	Start     string
	End       string
}

// Booking is the outcome of a committed reservation.
type Booking struct {
	Reservation persistence.Reservation
	User        persistence.User
	// Warnings are informational and never prevent the booking.
	Warnings []scheduler.Conflict
}

// BookingService records reservations for rooms.
type BookingService struct {
	store  persistence.Gateway
	logger *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(store persistence.Gateway) *BookingService {
	return NewBookingServiceWithLogger(store, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(store persistence.Gateway, logger *slog.Logger) *BookingService {
	return &BookingService{store: store, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateReservation books a room for a newly created user. The room is looked
// up first, then both timestamps are parsed; either failure writes nothing.
// The user and the reservation are stored in a single transaction.
func (s *BookingService) CreateReservation(ctx context.Context, req BookingRequest) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("storage gateway not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateReservation", "room_id", req.RoomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"reservation_id", booking.Reservation.ID,
			"user_id", booking.User.ID,
			"warning_count", len(booking.Warnings),
		).InfoContext(ctx, "reservation created")
	}()

	var room persistence.Room
	room, err = s.store.GetRoom(ctx, req.RoomID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	var start, end time.Time
	if start, err = ParseTimestamp("start", req.Start); err != nil {
		return
	}
	if end, err = ParseTimestamp("end", req.End); err != nil {
		return
	}

	var existing []persistence.Reservation
	existing, err = s.store.ListReservationsForRoom(ctx, room.ID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	user := persistence.User{
		LastName:  strings.TrimSpace(req.LastName),
		FirstName: strings.TrimSpace(req.FirstName),
		Email:     strings.TrimSpace(req.Email),
	}
	reservation := persistence.Reservation{
		StartsAt: start,
		EndsAt:   end,
		Label:    DefaultReservationLabel,
		Room:     &room,
		User:     &user,
	}

	err = s.store.WithTransaction(ctx, func(repos persistence.Repositories) error {
		if err := repos.CreateUser(ctx, &user); err != nil {
			return err
		}
		return repos.CreateReservation(ctx, &reservation)
	})
	if err != nil {
		err = mapRepoError(err)
		return
	}

	booking = Booking{
		Reservation: reservation,
		User:        user,
		Warnings:    bookingWarnings(room.ID, existing, reservation),
	}
	return
}

func bookingWarnings(roomID uint, existing []persistence.Reservation, created persistence.Reservation) []scheduler.Conflict {
	windows := make([]scheduler.Window, 0, len(existing))
	for _, r := range existing {
		windows = append(windows, reservationWindow(roomID, r))
	}
	return scheduler.DetectConflicts(windows, reservationWindow(roomID, created))
}

func reservationWindow(roomID uint, r persistence.Reservation) scheduler.Window {
	return scheduler.Window{ID: r.ID, RoomID: roomID, Start: r.StartsAt, End: r.EndsAt}
}
