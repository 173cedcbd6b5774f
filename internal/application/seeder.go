package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/room-reservations/internal/persistence"
)

// SeedResult reports what Seed wrote.
type SeedResult struct {
	// Skipped is true when rooms already existed and nothing was written.
	Skipped    bool
	Categories []persistence.Category
	Rooms      []persistence.Room
}

type seedRoom struct {
	name     string
	capacity int
	category string
}

var (
	seedCategories = []string{"Informatique", "Conférence"}
	seedRooms      = []seedRoom{
		{name: "Salle 1", capacity: 30, category: "Informatique"},
		{name: "Salle 2", capacity: 50, category: "Conférence"},
	}
)

// Seeder fills an empty store with the starter catalog.
type Seeder struct {
	store  persistence.Gateway
	logger *slog.Logger
}

// NewSeeder constructs a seeder writing through store.
func NewSeeder(store persistence.Gateway, logger *slog.Logger) *Seeder {
	return &Seeder{store: store, logger: defaultLogger(logger)}
}

// Seed creates the starter categories and rooms in one transaction when the
// room table is empty. A store that already has rooms is left untouched.
func (s *Seeder) Seed(ctx context.Context) (result SeedResult, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("seeder not configured")
		return
	}

	logger := serviceLogger(ctx, s.logger, "Seeder", "Seed")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed catalog", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"skipped", result.Skipped,
			"category_count", len(result.Categories),
			"room_count", len(result.Rooms),
		).InfoContext(ctx, "catalog seeded")
	}()

	err = s.store.WithTransaction(ctx, func(repos persistence.Repositories) error {
		count, err := repos.CountRooms(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			result = SeedResult{Skipped: true}
			return nil
		}

		byName := make(map[string]*persistence.Category, len(seedCategories))
		for _, name := range seedCategories {
			category := &persistence.Category{Name: name}
			if err := repos.CreateCategory(ctx, category); err != nil {
				return err
			}
			byName[name] = category
		}

		for _, seed := range seedRooms {
			room := &persistence.Room{Name: seed.name, Capacity: seed.capacity}
			byName[seed.category].AddRoom(room)
			if err := repos.CreateRoom(ctx, room); err != nil {
				return err
			}
		}

		for _, name := range seedCategories {
			result.Categories = append(result.Categories, *byName[name])
		}
		for _, name := range seedCategories {
			for _, room := range byName[name].Rooms {
				result.Rooms = append(result.Rooms, *room)
			}
		}
		return nil
	})
	if err != nil {
		result = SeedResult{}
		err = mapRepoError(err)
		return
	}
	return
}
