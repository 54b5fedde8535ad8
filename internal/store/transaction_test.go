package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRunInTransaction_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO themes").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO themes (name) VALUES ($1)", "animals")
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_FunctionError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	expectedErr := errors.New("function failed")
	err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
		return expectedErr
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_BeginAndCommitErrors(t *testing.T) {
	t.Run("begin", func(t *testing.T) {
		db, mock := newMockDB(t)
		beginErr := errors.New("begin failed")
		mock.ExpectBegin().WillReturnError(beginErr)

		err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error { return nil })

		assert.ErrorIs(t, err, ErrTransactionFailed)
		assert.ErrorIs(t, err, beginErr)
	})

	t.Run("commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		commitErr := errors.New("commit failed")
		mock.ExpectCommit().WillReturnError(commitErr)

		err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error { return nil })

		assert.ErrorIs(t, err, ErrTransactionFailed)
		assert.ErrorIs(t, err, commitErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunInTransaction_RollbackError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	functionErr := errors.New("function failed")
	mock.ExpectRollback().WillReturnError(errors.New("rollback failed"))

	err := RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
		return functionErr
	})

	assert.ErrorIs(t, err, functionErr)
	assert.Contains(t, err.Error(), "rollback failed")
}

func TestRunInTransaction_Panic(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "test panic", func() {
		_ = RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
			panic("test panic")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("word", "insert", "failed to insert words", cause)

	assert.Equal(t, "insert operation on word failed: failed to insert words: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "query operation on theme failed: empty name",
		NewStoreError("theme", "query", "empty name", nil).Error())
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrThemeNotFound))
	assert.True(t, IsNotFoundError(NewStoreError("theme", "query", "missing", ErrThemeNotFound)))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(nil))
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.False(t, IsDuplicateError(errors.New("other")))
}
