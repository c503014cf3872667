// store_test.go provides the shared database helpers for the store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"durgamondir/internal/database"
	"durgamondir/internal/models"
)

// testDSN uses the same environment variables and defaults as config.Load.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "durgamondir")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "durgamondir")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens the test database and runs migrations, skipping the test
// when PostgreSQL is unreachable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testStaff creates a throwaway staff user and removes it (with everything
// it authored) when the test ends.
func testStaff(t *testing.T, db *sql.DB) *models.User {
	t.Helper()
	email := "staff-" + uuid.NewString()[:8] + "@store-test.local"
	u, err := NewUserStore(db).Create(context.Background(), email, "secret123", "Store Test", true)
	if err != nil {
		t.Fatalf("create staff user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

func uniqueSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
