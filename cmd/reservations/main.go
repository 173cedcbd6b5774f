package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/example/room-reservations/internal/application"
	"github.com/example/room-reservations/internal/config"
	"github.com/example/room-reservations/internal/logging"
	"github.com/example/room-reservations/internal/persistence"
	"github.com/example/room-reservations/internal/persistence/store"
	"github.com/example/room-reservations/internal/shell"
)

const lifecycleTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run wires the application, serves one console session and returns the
// process exit code.
func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	var session *shell.Shell
	app := newApp(cfg, logger, stdin, stdout, fx.Populate(&session))

	startCtx, cancelStart := context.WithTimeout(ctx, lifecycleTimeout)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		logger.Error("failed to start", "error", err)
		return 1
	}

	runErr := serve(ctx, session)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("failed to stop", "error", err)
		return 1
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("session failed", "error", runErr)
		return 1
	}
	return 0
}

// serve runs the session until it returns or ctx is cancelled. A blocked read
// on stdin cannot be interrupted, so cancellation returns without waiting.
func serve(ctx context.Context, session *shell.Shell) error {
	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newApp(cfg config.Config, logger *slog.Logger, stdin io.Reader, stdout io.Writer, opts ...fx.Option) *fx.App {
	return fx.New(
		fx.NopLogger,
		fx.Supply(cfg, logger),
		fx.Provide(
			provideStore,
			func(s *store.Store) persistence.Gateway { return s },
			provideQueryService,
			application.NewBookingServiceWithLogger,
			application.NewSeeder,
			func(queries *application.QueryService, bookings *application.BookingService, logger *slog.Logger) *shell.Shell {
				return shell.New(stdin, stdout, queries, bookings, logger)
			},
		),
		fx.Invoke(registerSeed),
		fx.Options(opts...),
	)
}

// provideStore opens the configured database. The schema is migrated when the
// application starts and the connection is released when it stops.
func provideStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*store.Store, error) {
	storeCfg := store.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
		Logger: logger,
	}
	if cfg.DBDriver == config.DriverSQLite {
		sqliteCfg := store.DefaultSQLiteConfig(cfg.DBDSN)
		sqliteCfg.BusyTimeout = cfg.BusyTimeout
		storeCfg.SQLite = &sqliteCfg
	}

	s, err := store.Open(context.Background(), storeCfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Migrate(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})
	return s, nil
}

func provideQueryService(s *store.Store, logger *slog.Logger) *application.QueryService {
	return application.NewQueryServiceWithLogger(s, s, logger)
}

// registerSeed fills an empty catalog after migration when seeding is enabled.
func registerSeed(lc fx.Lifecycle, cfg config.Config, seeder *application.Seeder) {
	if !cfg.Seed {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := seeder.Seed(ctx); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			return nil
		},
	})
}
