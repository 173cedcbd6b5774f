package application

import (
	"context"
	"sort"

	"github.com/example/room-reservations/internal/persistence"
)

// gatewayStub is an in-memory persistence.Gateway. Transactions run fn
// directly and never roll back.
type gatewayStub struct {
	nextID       uint
	categories   map[uint]persistence.Category
	rooms        map[uint]persistence.Room
	users        []persistence.User
	reservations []persistence.Reservation

	getRoomErr           error
	listRoomsErr         error
	listReservationsErr  error
	createCategoryErr    error
	createRoomErr        error
	createUserErr        error
	createReservationErr error
	deleteErr            error
	txErr                error

	txCalls   int
	deletedID uint
}

var _ persistence.Gateway = (*gatewayStub)(nil)

func newGatewayStub() *gatewayStub {
	return &gatewayStub{
		categories: make(map[uint]persistence.Category),
		rooms:      make(map[uint]persistence.Room),
	}
}

func (g *gatewayStub) id() uint {
	g.nextID++
	return g.nextID
}

func (g *gatewayStub) addRoom(name string, capacity int) persistence.Room {
	room := persistence.Room{ID: g.id(), Name: name, Capacity: capacity}
	g.rooms[room.ID] = room
	return room
}

func (g *gatewayStub) CreateCategory(ctx context.Context, category *persistence.Category) error {
	if g.createCategoryErr != nil {
		return g.createCategoryErr
	}
	category.ID = g.id()
	g.categories[category.ID] = *category
	return nil
}

func (g *gatewayStub) GetCategory(ctx context.Context, id uint) (persistence.Category, error) {
	category, ok := g.categories[id]
	if !ok {
		return persistence.Category{}, persistence.ErrNotFound
	}
	return category, nil
}

func (g *gatewayStub) ListCategories(ctx context.Context) ([]persistence.Category, error) {
	out := make([]persistence.Category, 0, len(g.categories))
	for _, c := range g.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (g *gatewayStub) CountCategories(ctx context.Context) (int64, error) {
	return int64(len(g.categories)), nil
}

func (g *gatewayStub) DeleteCategory(ctx context.Context, id uint) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	if _, ok := g.categories[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(g.categories, id)
	g.deletedID = id
	return nil
}

func (g *gatewayStub) CreateRoom(ctx context.Context, room *persistence.Room) error {
	if g.createRoomErr != nil {
		return g.createRoomErr
	}
	if room.Category != nil {
		id := room.Category.ID
		room.CategoryID = &id
	}
	room.ID = g.id()
	g.rooms[room.ID] = *room
	return nil
}

func (g *gatewayStub) GetRoom(ctx context.Context, id uint) (persistence.Room, error) {
	if g.getRoomErr != nil {
		return persistence.Room{}, g.getRoomErr
	}
	room, ok := g.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return room, nil
}

func (g *gatewayStub) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	if g.listRoomsErr != nil {
		return nil, g.listRoomsErr
	}
	out := make([]persistence.Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (g *gatewayStub) CountRooms(ctx context.Context) (int64, error) {
	return int64(len(g.rooms)), nil
}

func (g *gatewayStub) CreateUser(ctx context.Context, user *persistence.User) error {
	if g.createUserErr != nil {
		return g.createUserErr
	}
	user.ID = g.id()
	g.users = append(g.users, *user)
	return nil
}

func (g *gatewayStub) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(g.users)), nil
}

func (g *gatewayStub) CreateReservation(ctx context.Context, reservation *persistence.Reservation) error {
	if g.createReservationErr != nil {
		return g.createReservationErr
	}
	if reservation.Room != nil {
		reservation.RoomID = reservation.Room.ID
	}
	if reservation.User != nil {
		reservation.UserID = reservation.User.ID
	}
	reservation.ID = g.id()
	g.reservations = append(g.reservations, *reservation)
	return nil
}

func (g *gatewayStub) ListReservationsForRoom(ctx context.Context, roomID uint) ([]persistence.Reservation, error) {
	if g.listReservationsErr != nil {
		return nil, g.listReservationsErr
	}
	var out []persistence.Reservation
	for _, r := range g.reservations {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (g *gatewayStub) CountReservations(ctx context.Context) (int64, error) {
	return int64(len(g.reservations)), nil
}

func (g *gatewayStub) WithTransaction(ctx context.Context, fn func(repos persistence.Repositories) error) error {
	g.txCalls++
	if g.txErr != nil {
		return g.txErr
	}
	return fn(g)
}
