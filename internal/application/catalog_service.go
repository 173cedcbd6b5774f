package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/room-reservations/internal/persistence"
)

// RoomInput carries the attributes of a new room. CategoryID is optional.
type RoomInput struct {
	Name       string
	Capacity   int
	CategoryID *uint
}

// CatalogService maintains categories and rooms.
type CatalogService struct {
	store  persistence.Gateway
	logger *slog.Logger
}

// NewCatalogService constructs a catalog service with the provided dependencies.
func NewCatalogService(store persistence.Gateway) *CatalogService {
	return NewCatalogServiceWithLogger(store, nil)
}

// NewCatalogServiceWithLogger constructs a catalog service with a specified logger.
func NewCatalogServiceWithLogger(store persistence.Gateway, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: defaultLogger(logger)}
}

func (s *CatalogService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CatalogService", operation, attrs...)
}

// CreateCategory stores a category. A name already in use yields
// ErrConstraintViolation.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (category persistence.Category, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("storage gateway not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateCategory")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create category", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("category_id", category.ID).InfoContext(ctx, "category created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(name) == "" {
		vErr.add("name", "name is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	category = persistence.Category{Name: strings.TrimSpace(name)}
	if err = s.store.CreateCategory(ctx, &category); err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// CreateRoom validates input and stores a new room, linking it to its
// category when one is given.
func (s *CatalogService) CreateRoom(ctx context.Context, input RoomInput) (room persistence.Room, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("storage gateway not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	if vErr := validateRoomInput(input); vErr.HasErrors() {
		err = vErr
		return
	}

	room = persistence.Room{
		Name:     strings.TrimSpace(input.Name),
		Capacity: input.Capacity,
	}

	err = s.store.WithTransaction(ctx, func(repos persistence.Repositories) error {
		if input.CategoryID != nil {
			category, err := repos.GetCategory(ctx, *input.CategoryID)
			if err != nil {
				if errors.Is(err, persistence.ErrNotFound) {
					vErr := &ValidationError{}
					vErr.add("category_id", "category does not exist")
					return vErr
				}
				return err
			}
			category.AddRoom(&room)
		}
		return repos.CreateRoom(ctx, &room)
	})
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// DeleteCategory removes a category, its rooms and their reservations.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if s == nil {
		return fmt.Errorf("CatalogService is nil")
	}
	if s.store == nil {
		return fmt.Errorf("storage gateway not configured")
	}

	logger := s.loggerWith(ctx, "DeleteCategory", "category_id", id)

	if err := s.store.DeleteCategory(ctx, id); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete category", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "category deleted")
	return nil
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}

	return vErr
}
