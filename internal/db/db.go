// Package db opens ORM connections for the supported backends, creates and
// drops named databases on server backends, and runs the schema migrations.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/bakery/internal/config"
	"github.com/example/bakery/internal/logger"
	"github.com/example/bakery/internal/sqlerr"
)

// PingTimeout bounds the liveness check made right after opening a handle.
const PingTimeout = 10 * time.Second

// Conn is a live database handle.
type Conn struct {
	DB      *gorm.DB
	Backend Backend
	log     zerolog.Logger
}

// Options tunes how a handle is opened.
type Options struct {
	// TraceSQL logs every generated statement at debug level.
	TraceSQL bool
}

// Connect opens a handle from cfg.URL. File backends use that handle as is.
// Server backends with cfg.Name set reconnect scoped to that database.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger, opts Options) (*Conn, error) {
	backend, err := ParseBackend(cfg.URL)
	if err != nil {
		return nil, err
	}

	root, err := open(ctx, backend, cfg.URL, "", log, opts)
	if err != nil {
		return nil, err
	}
	if !backend.IsServer() || cfg.Name == "" {
		log.Info().Str("backend", backend.String()).Msg("connected to the database")
		return root, nil
	}

	if err := root.Close(); err != nil {
		return nil, err
	}

	scoped, err := open(ctx, backend, cfg.URL, cfg.Name, log, opts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", backend.String()).Str("database", cfg.Name).Msg("connected to the database")
	return scoped, nil
}

// CreateDatabase creates cfg.Name on the server root connection. MySQL uses a
// conditional create; Postgres drops any existing database first. File
// backends have nothing to create.
func CreateDatabase(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger, opts Options) error {
	return onRoot(ctx, cfg, log, opts, func(conn *Conn) error {
		name := clause.Table{Name: cfg.Name}
		db := conn.DB.WithContext(ctx)

		switch conn.Backend {
		case MySQL:
			if err := db.Exec("CREATE DATABASE IF NOT EXISTS ?", name).Error; err != nil {
				return sqlerr.Wrap("create database", err)
			}
		case Postgres:
			if err := db.Exec("DROP DATABASE IF EXISTS ?", name).Error; err != nil {
				return sqlerr.Wrap("drop database", err)
			}
			if err := db.Exec("CREATE DATABASE ?", name).Error; err != nil {
				return sqlerr.Wrap("create database", err)
			}
		}

		log.Info().Str("database", cfg.Name).Msg("database created")
		return nil
	})
}

// DropDatabase drops cfg.Name if it exists. File backends are left alone.
func DropDatabase(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger, opts Options) error {
	return onRoot(ctx, cfg, log, opts, func(conn *Conn) error {
		err := conn.DB.WithContext(ctx).Exec("DROP DATABASE IF EXISTS ?", clause.Table{Name: cfg.Name}).Error
		if err != nil {
			return sqlerr.Wrap("drop database", err)
		}
		log.Info().Str("database", cfg.Name).Msg("database dropped")
		return nil
	})
}

// Close releases the underlying connection pool.
func (c *Conn) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	c.log.Debug().Msg("closing database connection")
	return sqlDB.Close()
}

// onRoot runs fn on an unscoped server connection.
func onRoot(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger, opts Options, fn func(*Conn) error) error {
	if cfg.Name == "" {
		return fmt.Errorf("%s must be set", config.EnvDBName)
	}

	backend, err := ParseBackend(cfg.URL)
	if err != nil {
		return err
	}
	if !backend.IsServer() {
		log.Info().Str("backend", backend.String()).Msg("file backend has no named databases, nothing to do")
		return nil
	}

	conn, err := open(ctx, backend, cfg.URL, "", log, opts)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

func open(ctx context.Context, backend Backend, rawURL, dbName string, log zerolog.Logger, opts Options) (*Conn, error) {
	dialector, err := dialectorFor(backend, rawURL, dbName)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(log, opts.TraceSQL),
	})
	if err != nil {
		return nil, sqlerr.Wrap(fmt.Sprintf("open %s", redact(rawURL)), err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if backend == Sqlite {
		// One connection keeps :memory: databases alive and shared.
		sqlDB.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, sqlerr.Wrap("ping database", err)
	}

	return &Conn{DB: gdb, Backend: backend, log: log}, nil
}

func dialectorFor(backend Backend, rawURL, dbName string) (gorm.Dialector, error) {
	switch backend {
	case Sqlite:
		return sqlite.Open(sqliteDSN(rawURL)), nil
	case Postgres:
		dsn, err := postgresDSN(rawURL, dbName)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case MySQL:
		dsn, err := mysqlDSN(rawURL, dbName)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedBackend, backend)
}
