package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/platform/postgres"
	"github.com/phrazzld/juicebox-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresTagStore_UpsertTags(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing usable issues no query", func(t *testing.T) {
		db, mock := newMockDB(t)
		tags := postgres.NewPostgresTagStore(db, nil)

		for _, input := range [][]string{nil, {}, {"", "   "}} {
			res, err := tags.UpsertTags(ctx, input)
			require.NoError(t, err)
			assert.Equal(t, store.OutcomeNoop, res.Outcome)
			assert.NotNil(t, res.Tags)
			assert.Empty(t, res.Tags)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicates resolve to one tag each in input order", func(t *testing.T) {
		db, mock := newMockDB(t)
		tags := postgres.NewPostgresTagStore(db, nil)

		mock.ExpectExec("INSERT INTO tags (name) VALUES ($1), ($2) ON CONFLICT (name) DO NOTHING").
			WithArgs("systems", "go").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, name FROM tags WHERE name IN ($1, $2)").
			WithArgs("systems", "go").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow(1, "go").
				AddRow(2, "systems"))

		res, err := tags.UpsertTags(ctx, []string{" systems", "go", "systems ", "go"})
		require.NoError(t, err)
		assert.Equal(t, store.OutcomeApplied, res.Outcome)
		assert.Equal(t, []domain.Tag{{ID: 2, Name: "systems"}, {ID: 1, Name: "go"}}, res.Tags)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row after insert fails the whole call", func(t *testing.T) {
		db, mock := newMockDB(t)
		tags := postgres.NewPostgresTagStore(db, nil)

		mock.ExpectExec("INSERT INTO tags (name) VALUES ($1), ($2) ON CONFLICT (name) DO NOTHING").
			WithArgs("a", "b").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("SELECT id, name FROM tags WHERE name IN ($1, $2)").
			WithArgs("a", "b").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a"))

		res, err := tags.UpsertTags(ctx, []string{"a", "b"})
		require.Error(t, err)
		assert.Nil(t, res.Tags)
		assert.True(t, store.IsStoreError(err))
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure is a store error", func(t *testing.T) {
		db, mock := newMockDB(t)
		tags := postgres.NewPostgresTagStore(db, nil)

		backendErr := errors.New("connection refused")
		mock.ExpectExec("INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING").
			WithArgs("go").
			WillReturnError(backendErr)

		_, err := tags.UpsertTags(ctx, []string{"go"})
		require.Error(t, err)

		var se *store.StoreError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "tag", se.Entity)
		assert.Equal(t, "upsert", se.Operation)
		assert.ErrorIs(t, err, backendErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTagStore_GetAll(t *testing.T) {
	db, mock := newMockDB(t)
	tags := postgres.NewPostgresTagStore(db, nil)

	mock.ExpectQuery(qAllTags).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "happy").
			AddRow(2, "worst-day-ever"))

	got, err := tags.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: 1, Name: "happy"}, {ID: 2, Name: "worst-day-ever"}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTagStore_GetAllEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	tags := postgres.NewPostgresTagStore(db, nil)

	mock.ExpectQuery(qAllTags).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := tags.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTagStore_GetByPost(t *testing.T) {
	db, mock := newMockDB(t)
	tags := postgres.NewPostgresTagStore(db, nil)

	mock.ExpectQuery(qPostTags).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "canmandy"))

	got, err := tags.GetByPost(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: 4, Name: "canmandy"}}, got)

	mock.ExpectQuery(qPostTags).WithArgs(int64(4)).WillReturnError(errors.New("boom"))
	_, err = tags.GetByPost(context.Background(), 4)
	assert.True(t, store.IsStoreError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresTagStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { postgres.NewPostgresTagStore(nil, nil) })
}
