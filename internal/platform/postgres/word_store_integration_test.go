//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/crocodile-words/internal/platform/postgres"
	"github.com/phrazzld/crocodile-words/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresWordStore_Integration(t *testing.T) {
	db := testdb.SetupDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	words := postgres.NewPostgresWordStore(db, logger)
	ctx := context.Background()

	theme := "integration-" + uuid.NewString()
	testdb.CleanupTheme(t, db, theme)

	inserted, err := words.AddWords(ctx, theme, []string{"Кошка", "Собака", "Кошка", " "})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Re-adding existing words is a no-op
	inserted, err = words.AddWords(ctx, theme, []string{"Собака"})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	count, err := words.CountWords(ctx, theme)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := words.RandomWords(ctx, theme, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Кошка", "Собака"}, got)

	themes, err := words.Themes(ctx)
	require.NoError(t, err)
	assert.Contains(t, themes, theme)
	assert.Contains(t, themes, "животные")
}

func TestMigrations_SeedDefaultThemes(t *testing.T) {
	db := testdb.SetupDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		var count int
		err := tx.QueryRowContext(context.Background(),
			`SELECT count(*) FROM themes WHERE name IN ('животные', 'спорт')`).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		_, err = tx.ExecContext(context.Background(), `DELETE FROM themes`)
		require.NoError(t, err)
	})

	postgresStore := postgres.NewPostgresWordStore(db, nil)
	themes, err := postgresStore.Themes(context.Background())
	require.NoError(t, err)
	assert.Contains(t, themes, "спорт")
}
