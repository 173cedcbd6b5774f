// Package store implements the persistence contracts on top of GORM. SQLite
// (pure Go, modernc.org/sqlite) is the default engine; PostgreSQL and MySQL are
// selected through Config.Driver.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/room-reservations/internal/persistence"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config selects and tunes the database engine.
type Config struct {
	Driver string
	DSN    string
	// SQLite overrides the connection settings for the sqlite driver. When
	// its DSN is empty, Config.DSN is used.
	SQLite *SQLiteConfig
	// Now stamps CreatedAt columns. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Store is the storage gateway. A Store obtained through WithTransaction is
// bound to that transaction.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
	closed bool
}

var _ persistence.Gateway = (*Store)(nil)

// Open connects to the configured database.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger:         newGormLogger(logger),
		TranslateError: true,
	}
	if cfg.Now != nil {
		now := cfg.Now
		gormCfg.NowFunc = func() time.Time { return now() }
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driverName(cfg.Driver), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: access connection pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driverName(cfg.Driver), err)
	}

	logger.DebugContext(ctx, "storage opened", "driver", driverName(cfg.Driver))
	return &Store{db: db, logger: logger}, nil
}

func newDialector(cfg Config) (gorm.Dialector, error) {
	switch driverName(cfg.Driver) {
	case DriverSQLite:
		sqliteCfg := DefaultSQLiteConfig(cfg.DSN)
		if cfg.SQLite != nil {
			sqliteCfg = *cfg.SQLite
			if sqliteCfg.DSN == "" {
				sqliteCfg.DSN = cfg.DSN
			}
		}
		conn, err := NewConnectionManager(sqliteCfg).GetConnection()
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		return sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: conn}), nil
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("store: postgres DSN is empty")
		}
		return postgres.Open(cfg.DSN), nil
	case DriverMySQL:
		if cfg.DSN == "" {
			return nil, errors.New("store: mysql DSN is empty")
		}
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", cfg.Driver)
	}
}

func driverName(driver string) string {
	if driver == "" {
		return DriverSQLite
	}
	return driver
}

// Migrate creates or updates the tables of the four records.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&persistence.Category{},
		&persistence.Room{},
		&persistence.User{},
		&persistence.Reservation{},
	)
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("store: access connection pool: %w", err)
	}
	return sqlDB.Close()
}

// WithTransaction executes fn within a database transaction. The transaction
// is rolled back when fn returns an error or panics and committed otherwise.
func (s *Store) WithTransaction(ctx context.Context, fn func(repos persistence.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, logger: s.logger})
	})
}

// Persist inserts record and assigns its identifier. Associated records are
// never written implicitly; their keys are copied by the record hooks.
func (s *Store) Persist(ctx context.Context, record any) error {
	return mapError(s.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

// Find loads the record with primary key id into dest and reports
// persistence.ErrNotFound when there is none.
func (s *Store) Find(ctx context.Context, dest any, id uint) error {
	if id == 0 {
		return persistence.ErrNotFound
	}
	return mapError(s.db.WithContext(ctx).First(dest, id).Error)
}

func (s *Store) count(ctx context.Context, model any) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
