package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/example/bakery/internal/config"
)

// setupTestConn opens a fresh in-memory sqlite database without migrations.
func setupTestConn(t *testing.T) *Conn {
	t.Helper()

	conn, err := Connect(context.Background(), config.DatabaseConfig{URL: "sqlite::memory:"}, zerolog.Nop(), Options{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}
