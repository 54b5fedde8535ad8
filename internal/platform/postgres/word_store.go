package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/crocodile-words/internal/platform/logger"
	"github.com/phrazzld/crocodile-words/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	conn   *sql.DB
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db *sql.DB, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		conn:   db,
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

const randomWordsQuery = `
	SELECT w.word
	FROM words w
	JOIN themes t ON t.id = w.theme_id
	WHERE lower(t.name) = lower($1)
	ORDER BY random()
	LIMIT $2
`

// RandomWords implements store.WordStore.RandomWords
func (s *PostgresWordStore) RandomWords(ctx context.Context, theme string, limit int) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []string{}, nil
	}

	rows, err := s.db.QueryContext(ctx, randomWordsQuery, theme, limit)
	if err != nil {
		log.Error("failed to query random words",
			slog.String("error", err.Error()),
			slog.String("theme", theme))
		return nil, store.NewStoreError("word", "query", "failed to query random words", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	words := make([]string, 0, limit)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, store.NewStoreError("word", "scan", "failed to scan word", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word", "query", "failed to iterate words", MapError(err))
	}

	log.Debug("loaded random words",
		slog.String("theme", theme),
		slog.Int("count", len(words)))
	return words, nil
}

const (
	upsertThemeQuery = `
		INSERT INTO themes (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	insertWordQuery = `
		INSERT INTO words (theme_id, word) VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT words_theme_word_unique DO NOTHING
	`
)

// AddWords implements store.WordStore.AddWords
// The theme upsert and all word inserts run in a single transaction.
func (s *PostgresWordStore) AddWords(ctx context.Context, theme string, words []string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	theme = strings.TrimSpace(theme)
	if theme == "" {
		return 0, fmt.Errorf("%w: theme name cannot be empty", store.ErrInvalidEntity)
	}

	inserted := 0
	err := store.RunInTransaction(ctx, s.conn, func(ctx context.Context, tx *sql.Tx) error {
		n, err := insertWords(ctx, tx, theme, words)
		inserted = n
		return err
	})
	if err != nil {
		log.Error("failed to add words",
			slog.String("error", err.Error()),
			slog.String("theme", theme))
		return 0, err
	}

	log.Info("words added",
		slog.String("theme", theme),
		slog.Int("submitted", len(words)),
		slog.Int("inserted", inserted))
	return inserted, nil
}

func insertWords(ctx context.Context, q store.DBTX, theme string, words []string) (int, error) {
	var themeID int64
	if err := q.QueryRowContext(ctx, upsertThemeQuery, theme).Scan(&themeID); err != nil {
		return 0, store.NewStoreError("theme", "upsert", "failed to upsert theme", MapError(err))
	}

	inserted := 0
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		res, err := q.ExecContext(ctx, insertWordQuery, themeID, w)
		if err != nil {
			return 0, store.NewStoreError("word", "insert", "failed to insert word", MapError(err))
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

// Themes implements store.WordStore.Themes
func (s *PostgresWordStore) Themes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM themes ORDER BY name`)
	if err != nil {
		return nil, store.NewStoreError("theme", "query", "failed to list themes", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var themes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, store.NewStoreError("theme", "scan", "failed to scan theme", err)
		}
		themes = append(themes, name)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("theme", "query", "failed to iterate themes", MapError(err))
	}
	return themes, nil
}

// CountWords implements store.WordStore.CountWords
func (s *PostgresWordStore) CountWords(ctx context.Context, theme string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM words w
		JOIN themes t ON t.id = w.theme_id
		WHERE lower(t.name) = lower($1)
	`, theme).Scan(&count)
	if err != nil {
		return 0, store.NewStoreError("word", "count", "failed to count words", MapError(err))
	}
	return count, nil
}

// Ping implements store.WordStore.Ping
func (s *PostgresWordStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}
