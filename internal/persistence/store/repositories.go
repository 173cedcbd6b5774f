package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/room-reservations/internal/persistence"
)

// --- CategoryRepository implementation ---

// CreateCategory stores a new category. Blank names are rejected with
// persistence.ErrConstraintViolation and duplicates with persistence.ErrDuplicate.
func (s *Store) CreateCategory(ctx context.Context, category *persistence.Category) error {
	return s.Persist(ctx, category)
}

// GetCategory retrieves a category by ID without its rooms.
func (s *Store) GetCategory(ctx context.Context, id uint) (persistence.Category, error) {
	var category persistence.Category
	if err := s.Find(ctx, &category, id); err != nil {
		return persistence.Category{}, err
	}
	return category, nil
}

// ListCategories returns all categories ordered by ID.
func (s *Store) ListCategories(ctx context.Context) ([]persistence.Category, error) {
	var categories []persistence.Category
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, mapError(err)
	}
	return categories, nil
}

// CountCategories returns the number of stored categories.
func (s *Store) CountCategories(ctx context.Context) (int64, error) {
	return s.count(ctx, &persistence.Category{})
}

// DeleteCategory removes a category together with its rooms and their
// reservations.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	if id == 0 {
		return persistence.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := tx.Model(&persistence.Room{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("room_id IN (?)", rooms).Delete(&persistence.Reservation{}).Error; err != nil {
			return mapError(err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&persistence.Room{}).Error; err != nil {
			return mapError(err)
		}

		result := tx.Delete(&persistence.Category{}, id)
		if result.Error != nil {
			return mapError(result.Error)
		}
		if result.RowsAffected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

// --- RoomRepository implementation ---

// CreateRoom stores a new room. When room.Category is set its ID becomes the
// room's category key.
func (s *Store) CreateRoom(ctx context.Context, room *persistence.Room) error {
	return s.Persist(ctx, room)
}

// GetRoom retrieves a room and its category by ID.
func (s *Store) GetRoom(ctx context.Context, id uint) (persistence.Room, error) {
	if id == 0 {
		return persistence.Room{}, persistence.ErrNotFound
	}

	var room persistence.Room
	if err := s.db.WithContext(ctx).Preload("Category").First(&room, id).Error; err != nil {
		return persistence.Room{}, mapError(err)
	}
	return room, nil
}

// ListRooms returns all rooms with their categories in ID order.
func (s *Store) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	var rooms []persistence.Room
	if err := s.db.WithContext(ctx).Preload("Category").Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, mapError(err)
	}
	return rooms, nil
}

// CountRooms returns the number of stored rooms.
func (s *Store) CountRooms(ctx context.Context) (int64, error) {
	return s.count(ctx, &persistence.Room{})
}

// --- UserRepository implementation ---

// CreateUser stores a new user. No lookup by email is performed.
func (s *Store) CreateUser(ctx context.Context, user *persistence.User) error {
	return s.Persist(ctx, user)
}

// CountUsers returns the number of stored users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.count(ctx, &persistence.User{})
}

// --- ReservationRepository implementation ---

// CreateReservation stores a new reservation. The referenced room and user
// must already exist.
func (s *Store) CreateReservation(ctx context.Context, reservation *persistence.Reservation) error {
	return s.Persist(ctx, reservation)
}

// ListReservationsForRoom returns the reservations of a room ordered by start
// time then ID, each with its user loaded.
func (s *Store) ListReservationsForRoom(ctx context.Context, roomID uint) ([]persistence.Reservation, error) {
	var reservations []persistence.Reservation
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("starts_at ASC").
		Order("id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, mapError(err)
	}
	return reservations, nil
}

// CountReservations returns the number of stored reservations.
func (s *Store) CountReservations(ctx context.Context) (int64, error) {
	return s.count(ctx, &persistence.Reservation{})
}
