// Package shell runs the interactive reservation menu over a line-oriented
// reader and writer.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/example/room-reservations/internal/application"
	"github.com/example/room-reservations/internal/logging"
	"github.com/example/room-reservations/internal/persistence"
	"github.com/example/room-reservations/internal/scheduler"
)

// RoomQueries is the read side used by the menu.
type RoomQueries interface {
	ListRooms(ctx context.Context) ([]persistence.Room, error)
	GetRoom(ctx context.Context, roomID uint) (persistence.Room, error)
	CheckAvailability(ctx context.Context, roomID uint) (application.Availability, error)
}

// Bookings records reservations entered in the menu.
type Bookings interface {
	CreateReservation(ctx context.Context, req application.BookingRequest) (application.Booking, error)
}

const menu = `
=== Menu Gestion des Réservations ===
1. Lister les salles
2. Vérifier la disponibilité d’une salle
3. Créer une réservation
0. Quitter
Votre choix : `

// Shell is one interactive session.
type Shell struct {
	in        *bufio.Scanner
	out       io.Writer
	queries   RoomQueries
	bookings  Bookings
	logger    *slog.Logger
	sessionID string
}

// New builds a session reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, queries RoomQueries, bookings Bookings, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	sessionID := uuid.NewString()
	return &Shell{
		in:        bufio.NewScanner(in),
		out:       out,
		queries:   queries,
		bookings:  bookings,
		logger:    logger.With("component", "shell", "session_id", sessionID),
		sessionID: sessionID,
	}
}

// SessionID identifies the session in logs.
func (s *Shell) SessionID() string {
	return s.sessionID
}

// Run shows the menu until the user picks 0, the input ends or ctx is done.
// Only input read failures and context cancellation are returned; operation
// failures are reported on out and the menu is shown again.
func (s *Shell) Run(ctx context.Context) error {
	ctx = logging.ContextWithLogger(ctx, s.logger)
	s.logger.DebugContext(ctx, "session started")
	defer s.logger.DebugContext(ctx, "session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.print(menu)
		line, ok := s.readLine()
		if !ok {
			return s.inputErr()
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.println("Choix invalide !")
			continue
		}

		var done bool
		switch choice {
		case 1:
			s.listRooms(ctx)
		case 2:
			done = s.checkAvailability(ctx)
		case 3:
			done = s.createReservation(ctx)
		case 0:
			return nil
		default:
			s.println("Choix invalide !")
		}
		if done {
			return s.inputErr()
		}
	}
}

func (s *Shell) listRooms(ctx context.Context) {
	rooms, err := s.queries.ListRooms(ctx)
	if err != nil {
		s.reportError(ctx, "list rooms", err)
		return
	}
	if len(rooms) == 0 {
		s.println("Aucune salle trouvée.")
		return
	}
	for _, room := range rooms {
		category := room.CategoryName()
		if category == "" {
			category = "Aucune"
		}
		s.printf("- ID: %d, Nom: %s, Capacité: %d, Catégorie: %s\n", room.ID, room.Name, room.Capacity, category)
	}
}

// checkAvailability reports true when the input ended mid-dialog.
func (s *Shell) checkAvailability(ctx context.Context) bool {
	roomID, ok, eof := s.promptRoomID("Entrez l’ID de la salle : ")
	if eof {
		return true
	}
	if !ok {
		return false
	}

	availability, err := s.queries.CheckAvailability(ctx, roomID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			s.println("Salle introuvable !")
			return false
		}
		s.reportError(ctx, "check availability", err)
		return false
	}

	if availability.Available {
		s.printf("La salle \"%s\" est disponible.\n", availability.Room.Name)
		return false
	}
	s.printf("La salle \"%s\" a déjà des réservations :\n", availability.Room.Name)
	for _, r := range availability.Reservations {
		s.printf("- Du %s au %s\n", application.FormatTimestamp(r.StartsAt), application.FormatTimestamp(r.EndsAt))
	}
	return false
}

// createReservation reports true when the input ended mid-dialog.
func (s *Shell) createReservation(ctx context.Context) bool {
	var req application.BookingRequest
	var ok bool

	if req.LastName, ok = s.prompt("Nom de l’utilisateur : "); !ok {
		return true
	}
	if req.FirstName, ok = s.prompt("Prénom : "); !ok {
		return true
	}
	if req.Email, ok = s.prompt("Email : "); !ok {
		return true
	}

	roomID, valid, eof := s.promptRoomID("ID de la salle : ")
	if eof {
		return true
	}
	if !valid {
		return false
	}
	if _, err := s.queries.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			s.println("Salle introuvable !")
			return false
		}
		s.reportError(ctx, "get room", err)
		return false
	}
	req.RoomID = roomID

	if req.Start, ok = s.prompt("Date début (format: AAAA-MM-JJ HH:MM) : "); !ok {
		return true
	}
	if req.End, ok = s.prompt("Date fin (format: AAAA-MM-JJ HH:MM) : "); !ok {
		return true
	}

	booking, err := s.bookings.CreateReservation(ctx, req)
	switch {
	case errors.Is(err, application.ErrInvalidFormat):
		s.println("Erreur : format de date invalide. Utilisez AAAA-MM-JJ HH:MM")
		return false
	case errors.Is(err, application.ErrNotFound):
		s.println("Salle introuvable !")
		return false
	case err != nil:
		s.reportError(ctx, "create reservation", err)
		return false
	}

	s.println("Réservation créée avec succès !")
	for _, w := range booking.Warnings {
		s.println(warningText(w))
	}
	return false
}

func warningText(c scheduler.Conflict) string {
	switch c.Type {
	case scheduler.ConflictTypeInvertedWindow:
		return "Attention : la date de fin n'est pas postérieure à la date de début."
	default:
		return fmt.Sprintf("Attention : la salle est déjà réservée du %s au %s.",
			application.FormatTimestamp(c.Start), application.FormatTimestamp(c.End))
	}
}

// promptRoomID asks for a room identifier. ok is false when the answer is not
// an unsigned integer; eof is true when the input ended.
func (s *Shell) promptRoomID(label string) (id uint, ok, eof bool) {
	text, read := s.prompt(label)
	if !read {
		return 0, false, true
	}
	parsed, err := strconv.ParseUint(strings.TrimSpace(text), 10, 0)
	if err != nil {
		s.println("Identifiant de salle invalide !")
		return 0, false, false
	}
	return uint(parsed), true, false
}

func (s *Shell) prompt(label string) (string, bool) {
	s.print(label)
	return s.readLine()
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimRight(s.in.Text(), "\r"), true
}

func (s *Shell) inputErr() error {
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("shell: read input: %w", err)
	}
	return nil
}

func (s *Shell) reportError(ctx context.Context, operation string, err error) {
	s.logger.WarnContext(ctx, "operation failed", "operation", operation, "error", err, "error_kind", application.ErrorKind(err))
	s.printf("Erreur : %v\n", err)
}

func (s *Shell) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *Shell) println(text string) {
	_, _ = io.WriteString(s.out, text+"\n")
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
