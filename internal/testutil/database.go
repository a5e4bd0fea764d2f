package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"shopadmin/internal/config"
	"shopadmin/internal/infrastructure/mysql"
)

// testDatabase points at a local MySQL with a shopadmin_test schema. The
// TEST_DB_* variables override each part.
func testDatabase() config.DatabaseConfig {
	port, err := strconv.Atoi(envOr("TEST_DB_PORT", "3306"))
	if err != nil {
		port = 3306
	}
	return config.DatabaseConfig{
		Host:         envOr("TEST_DB_HOST", "localhost"),
		Port:         port,
		User:         envOr("TEST_DB_USER", "root"),
		Password:     os.Getenv("TEST_DB_PASSWORD"),
		Name:         envOr("TEST_DB_NAME", "shopadmin_test"),
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupTestDB opens the test database and skips the test when it is not
// reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := mysql.NewConnection(testDatabase())
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}
	return db
}

// SetupTestTables applies the embedded migrations.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := mysql.Migrate(testDatabase(), zap.NewNop()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
}

// CleanupTestDB empties every table and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"order_items", "orders", "reviews", "homepage", "company",
		"contacts", "faqs", "partnership", "payment_info", "products",
	}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}
