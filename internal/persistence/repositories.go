package persistence

import "context"

// CategoryRepository stores room categories.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, id uint) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CountCategories(ctx context.Context) (int64, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// RoomRepository stores rooms.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, id uint) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	CountRooms(ctx context.Context) (int64, error)
}

// UserRepository stores the people who book rooms.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	CountUsers(ctx context.Context) (int64, error)
}

// ReservationRepository stores reservations.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *Reservation) error
	ListReservationsForRoom(ctx context.Context, roomID uint) ([]Reservation, error)
	CountReservations(ctx context.Context) (int64, error)
}

// Repositories bundles every repository bound to one connection or transaction.
type Repositories interface {
	CategoryRepository
	RoomRepository
	UserRepository
	ReservationRepository
}

// Transactor runs fn inside a transaction. The repositories handed to fn are
// bound to that transaction; a non-nil error from fn rolls everything back.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(repos Repositories) error) error
}

// Gateway is the full storage contract used by the services.
type Gateway interface {
	Repositories
	Transactor
}
