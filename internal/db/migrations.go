package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migration is one versioned schema change.
type Migration struct {
	Version int
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// MigrationStatus reports whether a migration has been applied.
type MigrationStatus struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// schemaVersion is a row of the schema_version table.
type schemaVersion struct {
	Version   int       `gorm:"column:version;primaryKey;autoIncrement:false"`
	Name      string    `gorm:"column:name;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;autoCreateTime"`
}

func (schemaVersion) TableName() string {
	return "schema_version"
}

// Table definitions as of the migration that created them. These are frozen
// so later changes to the models cannot rewrite history.

type bakeryV1 struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string  `gorm:"column:name;not null"`
	ProfitMargin float64 `gorm:"column:profit_margin;type:double precision;not null"`
}

func (bakeryV1) TableName() string { return "bakery" }

type chefV2 struct {
	ID       int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string   `gorm:"column:name;not null"`
	BakeryID int64    `gorm:"column:bakery_id;not null;index"`
	Bakery   bakeryV1 `gorm:"foreignKey:BakeryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (chefV2) TableName() string { return "chef" }

// migrations is the list of all migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_bakery_table",
		Up:      func(tx *gorm.DB) error { return tx.Migrator().CreateTable(&bakeryV1{}) },
		Down:    func(tx *gorm.DB) error { return tx.Migrator().DropTable(&bakeryV1{}) },
	},
	{
		Version: 2,
		Name:    "create_chef_table",
		Up:      func(tx *gorm.DB) error { return tx.Migrator().CreateTable(&chefV2{}) },
		Down:    func(tx *gorm.DB) error { return tx.Migrator().DropTable(&chefV2{}) },
	},
}

// Migrations returns the registered migrations in version order.
func Migrations() []Migration {
	out := make([]Migration, len(migrations))
	copy(out, migrations)
	return out
}

// Migrator applies and rolls back migrations, recording progress in the
// schema_version table.
type Migrator struct {
	db         *gorm.DB
	log        zerolog.Logger
	migrations []Migration
}

// NewMigrator returns a migrator for the registered migrations.
func NewMigrator(db *gorm.DB, log zerolog.Logger) *Migrator {
	return NewMigratorWith(db, log, migrations)
}

// NewMigratorWith returns a migrator for an explicit migration list.
func NewMigratorWith(db *gorm.DB, log zerolog.Logger, list []Migration) *Migrator {
	return &Migrator{db: db, log: log, migrations: list}
}

// Up applies up to n pending migrations; n <= 0 applies all of them.
// It returns the versions applied.
func (m *Migrator) Up(ctx context.Context, n int) ([]int, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var done []int
	for _, mig := range m.migrations {
		if n > 0 && len(done) == n {
			break
		}
		if _, ok := applied[mig.Version]; ok {
			continue
		}

		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("applying migration")
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaVersion{Version: mig.Version, Name: mig.Name}).Error
		})
		if err != nil {
			return done, fmt.Errorf("migration %d (%s) failed: %w", mig.Version, mig.Name, err)
		}
		done = append(done, mig.Version)
	}

	if len(done) == 0 {
		m.log.Debug().Msg("database schema up to date")
	}
	return done, nil
}

// Down rolls back the last n applied migrations; n <= 0 rolls back one.
// It returns the versions rolled back.
func (m *Migrator) Down(ctx context.Context, n int) ([]int, error) {
	if n <= 0 {
		n = 1
	}
	return m.rollback(ctx, n)
}

// Reset rolls back every applied migration.
func (m *Migrator) Reset(ctx context.Context) ([]int, error) {
	return m.rollback(ctx, len(m.migrations))
}

// Refresh rolls back every applied migration, then applies all of them.
func (m *Migrator) Refresh(ctx context.Context) ([]int, error) {
	if _, err := m.Reset(ctx); err != nil {
		return nil, err
	}
	return m.Up(ctx, 0)
}

// Fresh drops every table in the database, then applies all migrations.
// Foreign key checks are suspended on one pinned connection so tables can be
// dropped in any order.
func (m *Migrator) Fresh(ctx context.Context) ([]int, error) {
	err := m.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		tables, err := tx.Migrator().GetTables()
		if err != nil {
			return fmt.Errorf("failed to list tables: %w", err)
		}

		dialect := tx.Dialector.Name()
		switch dialect {
		case "sqlite":
			tx.Exec("PRAGMA foreign_keys = OFF")
			defer tx.Exec("PRAGMA foreign_keys = ON")
		case "mysql":
			tx.Exec("SET FOREIGN_KEY_CHECKS = 0")
			defer tx.Exec("SET FOREIGN_KEY_CHECKS = 1")
		}

		stmt := "DROP TABLE IF EXISTS ?"
		if dialect == "postgres" {
			stmt += " CASCADE"
		}

		for _, t := range tables {
			if strings.HasPrefix(t, "sqlite_") {
				continue
			}
			m.log.Info().Str("table", t).Msg("dropping table")
			if err := tx.Exec(stmt, clause.Table{Name: t}).Error; err != nil {
				return fmt.Errorf("failed to drop table %s: %w", t, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m.Up(ctx, 0)
}

// Status lists every migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := MigrationStatus{Version: mig.Version, Name: mig.Name}
		if row, ok := applied[mig.Version]; ok {
			st.Applied = true
			st.AppliedAt = row.AppliedAt
		}
		out = append(out, st)
	}
	return out, nil
}

func (m *Migrator) rollback(ctx context.Context, n int) ([]int, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var done []int
	for i := len(m.migrations) - 1; i >= 0 && len(done) < n; i-- {
		mig := m.migrations[i]
		if _, ok := applied[mig.Version]; !ok {
			continue
		}

		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("rolling back migration")
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&schemaVersion{}, "version = ?", mig.Version).Error
		})
		if err != nil {
			return done, fmt.Errorf("rollback of migration %d (%s) failed: %w", mig.Version, mig.Name, err)
		}
		done = append(done, mig.Version)
	}
	return done, nil
}

// appliedVersions creates schema_version if needed and returns its rows by version.
func (m *Migrator) appliedVersions(ctx context.Context) (map[int]schemaVersion, error) {
	db := m.db.WithContext(ctx)
	if !db.Migrator().HasTable(&schemaVersion{}) {
		if err := db.Migrator().CreateTable(&schemaVersion{}); err != nil {
			return nil, fmt.Errorf("failed to create schema_version table: %w", err)
		}
	}

	var rows []schemaVersion
	if err := db.Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get current schema version: %w", err)
	}

	applied := make(map[int]schemaVersion, len(rows))
	for _, r := range rows {
		applied[r.Version] = r
	}
	return applied, nil
}
