// Package wire provides dependency injection for bakeryctl.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	cliadapter "github.com/example/bakery/internal/adapters/cli"
	"github.com/example/bakery/internal/adapters/gormrepo"
	"github.com/example/bakery/internal/app"
	"github.com/example/bakery/internal/config"
	"github.com/example/bakery/internal/db"
	"github.com/example/bakery/internal/logger"
	"github.com/example/bakery/internal/ports/primary"
)

var (
	overrides config.Overrides

	cfg       *config.Config
	log       zerolog.Logger
	setupOnce sync.Once

	conn     *db.Conn
	connOnce sync.Once

	bakeryService      primary.BakeryService
	chefService        primary.ChefService
	walkthroughService primary.WalkthroughService
	once               sync.Once
)

// Configure sets flag values that take precedence over the environment.
// It must be called before any other function in this package.
func Configure(o config.Overrides) {
	overrides = o
}

// Config returns the validated configuration.
func Config() *config.Config {
	setupOnce.Do(initConfig)
	return cfg
}

// Logger returns the application logger.
func Logger() zerolog.Logger {
	setupOnce.Do(initConfig)
	return log
}

// Migrator returns a migrator on the shared connection. It does not apply
// pending migrations by itself.
func Migrator() *db.Migrator {
	connOnce.Do(initConn)
	return db.NewMigrator(conn.DB, log)
}

// Conn returns the shared database connection.
func Conn() *db.Conn {
	connOnce.Do(initConn)
	return conn
}

// BakeryService returns the singleton BakeryService instance.
func BakeryService() primary.BakeryService {
	once.Do(initServices)
	return bakeryService
}

// ChefService returns the singleton ChefService instance.
func ChefService() primary.ChefService {
	once.Do(initServices)
	return chefService
}

// WalkthroughService returns the singleton WalkthroughService instance.
func WalkthroughService() primary.WalkthroughService {
	once.Do(initServices)
	return walkthroughService
}

// Close releases the database connection if one was opened.
func Close() error {
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func initConfig() {
	loaded, err := config.Load(".env")
	if err != nil {
		bootstrap().Fatal().Err(err).Msg("failed to load configuration")
	}
	loaded.Apply(overrides)

	log = logger.New(loaded.Log)
	if err := loaded.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	cfg = loaded
}

func initConn() {
	setupOnce.Do(initConfig)

	c, err := db.Connect(context.Background(), cfg.Database, log, db.Options{TraceSQL: cfg.Log.SQL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	conn = c
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	connOnce.Do(initConn)

	if cfg.Database.AutoMigrate {
		applied, err := db.NewMigrator(conn.DB, log).Up(context.Background(), 0)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
		if len(applied) > 0 {
			log.Info().Ints("versions", applied).Msg("applied pending migrations")
		}
	}

	// Create repository adapters (secondary ports) with injected DB
	bakeryRepo := gormrepo.NewBakeryRepository(conn.DB)
	chefRepo := gormrepo.NewChefRepository(conn.DB)

	// Create services (primary ports implementation)
	bakeryService = app.NewBakeryService(bakeryRepo)
	chefService = app.NewChefService(chefRepo)
	walkthroughService = app.NewWalkthroughService(bakeryRepo, chefRepo, log)
}

// bootstrap is the logger used before the configuration is known.
func bootstrap() *zerolog.Logger {
	l := logger.NewWithOutput(config.Default().Log, os.Stderr)
	return &l
}

// BakeryAdapter returns a new BakeryAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func BakeryAdapter() *cliadapter.BakeryAdapter {
	return BakeryAdapterWithOutput(os.Stdout)
}

// BakeryAdapterWithOutput returns a new BakeryAdapter writing to the given output.
func BakeryAdapterWithOutput(out io.Writer) *cliadapter.BakeryAdapter {
	return cliadapter.NewBakeryAdapter(BakeryService(), out)
}

// ChefAdapter returns a new ChefAdapter writing to stdout.
func ChefAdapter() *cliadapter.ChefAdapter {
	return ChefAdapterWithOutput(os.Stdout)
}

// ChefAdapterWithOutput returns a new ChefAdapter writing to the given output.
func ChefAdapterWithOutput(out io.Writer) *cliadapter.ChefAdapter {
	return cliadapter.NewChefAdapter(ChefService(), out)
}

// WalkthroughAdapter returns a new WalkthroughAdapter writing to stdout.
func WalkthroughAdapter() *cliadapter.WalkthroughAdapter {
	return cliadapter.NewWalkthroughAdapter(WalkthroughService(), os.Stdout)
}
