//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/crocodile-words/internal/platform/postgres"
	"github.com/phrazzld/crocodile-words/internal/redact"
)

// Environment variables consulted for the test database, in order of preference.
const (
	EnvTestDatabaseURL = "CROCODILE_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// GetTestDatabaseURL returns the configured test database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// SetupDB opens the test database and applies all migrations. The test is skipped
// when no database URL is configured and fails if the database cannot be reached.
// The connection is closed when the test finishes.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set, skipping database test", EnvTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to open test database: %s", redact.Error(err))
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := postgres.Migrate(db, postgres.MigrateUp, logger); err != nil {
		t.Fatalf("failed to migrate test database: %s", redact.Error(err))
	}

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so changes made
// by fn never persist.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// CleanupTheme deletes theme and, through the cascade, its words when the test
// finishes. Use it for tests that commit data through a store.
func CleanupTheme(t *testing.T, db *sql.DB, theme string) {
	t.Helper()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := db.ExecContext(ctx, `DELETE FROM themes WHERE name = $1`, theme); err != nil {
			t.Logf("Warning: failed to delete test theme %q: %v", theme, err)
		}
	})
}
