package db

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/example/bakery/internal/models"
)

func TestMigrator_UpAppliesAll(t *testing.T) {
	conn := setupTestConn(t)
	m := NewMigrator(conn.DB, zerolog.Nop())
	ctx := context.Background()

	applied, err := m.Up(ctx, 0)
	if err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if !reflect.DeepEqual(applied, []int{1, 2}) {
		t.Errorf("applied = %v, want [1 2]", applied)
	}

	for _, table := range []string{"bakery", "chef", "schema_version"} {
		if !conn.DB.Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}

	// Second run is a no-op.
	again, err := m.Up(ctx, 0)
	if err != nil {
		t.Fatalf("second Up failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second Up applied %v", again)
	}
}

func TestMigrator_UpStepsAndStatus(t *testing.T) {
	conn := setupTestConn(t)
	m := NewMigrator(conn.DB, zerolog.Nop())
	ctx := context.Background()

	if _, err := m.Up(ctx, 1); err != nil {
		t.Fatalf("Up(1) failed: %v", err)
	}

	status, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(status) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(status))
	}
	if !status[0].Applied || status[0].Name != "create_bakery_table" {
		t.Errorf("status[0] = %+v", status[0])
	}
	if status[0].AppliedAt.IsZero() {
		t.Error("applied migration should record applied_at")
	}
	if status[1].Applied {
		t.Errorf("status[1] should be pending: %+v", status[1])
	}
	if conn.DB.Migrator().HasTable("chef") {
		t.Error("chef table should not exist yet")
	}
}

func TestMigrator_DownAndReset(t *testing.T) {
	conn := setupTestConn(t)
	m := NewMigrator(conn.DB, zerolog.Nop())
	ctx := context.Background()

	if _, err := m.Up(ctx, 0); err != nil {
		t.Fatalf("Up failed: %v", err)
	}

	rolled, err := m.Down(ctx, 0)
	if err != nil {
		t.Fatalf("Down failed: %v", err)
	}
	if !reflect.DeepEqual(rolled, []int{2}) {
		t.Errorf("rolled back %v, want [2]", rolled)
	}
	if conn.DB.Migrator().HasTable("chef") {
		t.Error("chef table should be dropped")
	}
	if !conn.DB.Migrator().HasTable("bakery") {
		t.Error("bakery table should remain")
	}

	rolled, err = m.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !reflect.DeepEqual(rolled, []int{1}) {
		t.Errorf("reset rolled back %v, want [1]", rolled)
	}
	if conn.DB.Migrator().HasTable("bakery") {
		t.Error("bakery table should be dropped")
	}
}

func TestMigrator_RefreshAndFresh(t *testing.T) {
	conn := setupTestConn(t)
	m := NewMigrator(conn.DB, zerolog.Nop())
	ctx := context.Background()

	if _, err := m.Up(ctx, 0); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if _, err := SeedFixtures(ctx, conn.DB); err != nil {
		t.Fatalf("SeedFixtures failed: %v", err)
	}

	applied, err := m.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if !reflect.DeepEqual(applied, []int{1, 2}) {
		t.Errorf("refresh applied %v", applied)
	}
	assertEmpty(t, conn.DB)

	// A stray table is removed by Fresh but not by Refresh.
	if err := conn.DB.Exec("CREATE TABLE leftovers (id INTEGER)").Error; err != nil {
		t.Fatalf("failed to create stray table: %v", err)
	}
	if _, err := SeedFixtures(ctx, conn.DB); err != nil {
		t.Fatalf("SeedFixtures failed: %v", err)
	}

	applied, err = m.Fresh(ctx)
	if err != nil {
		t.Fatalf("Fresh failed: %v", err)
	}
	if !reflect.DeepEqual(applied, []int{1, 2}) {
		t.Errorf("fresh applied %v", applied)
	}
	if conn.DB.Migrator().HasTable("leftovers") {
		t.Error("Fresh should drop every table")
	}
	assertEmpty(t, conn.DB)
}

func TestMigrator_FailedMigrationIsNotRecorded(t *testing.T) {
	conn := setupTestConn(t)
	ctx := context.Background()
	boom := errors.New("boom")

	list := []Migration{
		Migrations()[0],
		{
			Version: 2,
			Name:    "broken",
			Up:      func(tx *gorm.DB) error { return boom },
			Down:    func(tx *gorm.DB) error { return nil },
		},
	}
	m := NewMigratorWith(conn.DB, zerolog.Nop(), list)

	applied, err := m.Up(ctx, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !reflect.DeepEqual(applied, []int{1}) {
		t.Errorf("applied = %v, want [1]", applied)
	}

	status, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status[1].Applied {
		t.Error("failed migration must not be recorded")
	}
}

func assertEmpty(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	var bakeries, chefs int64
	gdb.Model(&models.Bakery{}).Count(&bakeries)
	gdb.Model(&models.Chef{}).Count(&chefs)
	if bakeries != 0 || chefs != 0 {
		t.Errorf("expected empty tables, got %d bakeries and %d chefs", bakeries, chefs)
	}
}
