// Package gormrepo_test contains integration tests for the gorm repositories.
//
// Every test database is built by the versioned migrations in package db, the
// same path production takes. Do not create tables by hand in these tests.
package gormrepo_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/example/bakery/internal/config"
	"github.com/example/bakery/internal/db"
	"github.com/example/bakery/internal/models"
)

// setupTestDB opens a fresh in-memory sqlite database with all migrations applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Connect(context.Background(), config.DatabaseConfig{URL: "sqlite::memory:"}, zerolog.Nop(), db.Options{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})

	if _, err := db.NewMigrator(conn.DB, zerolog.Nop()).Up(context.Background(), 0); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn.DB
}

// seedBakery inserts a bakery and returns its id.
func seedBakery(t *testing.T, gdb *gorm.DB, name string, margin float64) int64 {
	t.Helper()
	b := &models.Bakery{Name: name, ProfitMargin: margin}
	if err := gdb.Create(b).Error; err != nil {
		t.Fatalf("failed to seed bakery: %v", err)
	}
	return b.ID
}

// seedChef inserts a chef and returns its id.
func seedChef(t *testing.T, gdb *gorm.DB, name string, bakeryID int64) int64 {
	t.Helper()
	c := &models.Chef{Name: name, BakeryID: bakeryID}
	if err := gdb.Create(c).Error; err != nil {
		t.Fatalf("failed to seed chef: %v", err)
	}
	return c.ID
}

func names(chefs []*models.Chef) []string {
	out := make([]string, 0, len(chefs))
	for _, c := range chefs {
		out = append(out, c.Name)
	}
	return out
}
