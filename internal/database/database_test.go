package database

import (
	"os"
	"testing"
	"time"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	return "postgres://" + envOr("POSTGRES_USER", "durgamondir") + ":" + envOr("POSTGRES_PASSWORD", "changeme") +
		"@" + envOr("POSTGRES_HOST", "localhost") + ":" + envOr("POSTGRES_PORT", "5432") +
		"/" + envOr("POSTGRES_DB", "durgamondir") + "?sslmode=disable"
}

// fastRetries shortens the connect backoff for the duration of a test.
func fastRetries(t *testing.T, attempts int) {
	t.Helper()
	prevAttempts, prevBackoff := connectAttempts, connectBackoff
	connectAttempts, connectBackoff = attempts, time.Millisecond
	t.Cleanup(func() { connectAttempts, connectBackoff = prevAttempts, prevBackoff })
}

func TestConnectPoolLimits(t *testing.T) {
	fastRetries(t, 1)
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != maxOpenConns {
		t.Errorf("max open conns: got %d, want %d", got, maxOpenConns)
	}
}

func TestConnectGivesUp(t *testing.T) {
	fastRetries(t, 2)

	start := time.Now()
	_, err := Connect("postgres://x:x@localhost:1/none?sslmode=disable&connect_timeout=1")
	if err == nil {
		t.Fatal("expected error for unreachable database")
	}
	if time.Since(start) > 30*time.Second {
		t.Errorf("Connect took %v to fail", time.Since(start))
	}
}

func TestMigrateCreatesSchema(t *testing.T) {
	fastRetries(t, 1)
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
	}

	tables := []string{
		"users", "pages", "events", "gallery_albums", "gallery_photos",
		"gallery_items", "committee_members", "durga_sangha_members",
		"countdowns", "puja_days", "sliders", "site_settings",
		"donation_info", "contacts", "media",
	}
	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			var exists bool
			err := db.QueryRow(
				"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
			).Scan(&exists)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if !exists {
				t.Errorf("table %s missing after migration", table)
			}
		})
	}
}

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	entries, err := embedMigrations.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) != 8 {
		t.Errorf("embedded migrations: got %d files, want 8", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name() >= entries[i].Name() {
			t.Errorf("migrations out of order: %s before %s", entries[i-1].Name(), entries[i].Name())
		}
	}
}
