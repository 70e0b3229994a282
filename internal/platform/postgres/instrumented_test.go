package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM posts"))
	assert.Equal(t, "insert", operation("\n\t\tINSERT INTO tags (name) VALUES ($1)"))
	assert.Equal(t, "update", operation("update posts set title = $1"))
	assert.Equal(t, "delete", operation("DELETE FROM post_tags WHERE post_id = $1"))
	assert.Equal(t, "other", operation("WITH x AS (SELECT 1) SELECT * FROM x"))
	assert.Equal(t, "other", operation(""))
}

func TestInstrumentedDBForwards(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	idb := NewInstrumentedDB(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM post_tags").WillReturnResult(sqlmock.NewResult(0, 3))
	res, err := idb.ExecContext(ctx, "DELETE FROM post_tags WHERE post_id = $1", 1)
	require.NoError(t, err)
	n, _ := res.RowsAffected()
	assert.Equal(t, int64(3), n)

	mock.ExpectQuery("SELECT id FROM posts").WillReturnError(errors.New("down"))
	_, err = idb.QueryContext(ctx, "SELECT id FROM posts ORDER BY id")
	assert.Error(t, err)

	mock.ExpectQuery("SELECT id FROM posts").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	var id int64
	require.NoError(t, idb.QueryRowContext(ctx, "SELECT id FROM posts WHERE id = $1", 1).Scan(&id))
	assert.Equal(t, int64(1), id)

	mock.ExpectBegin()
	tx, err := idb.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, isInstrumented := rebind(idb, tx).(*InstrumentedDB)
	assert.True(t, isInstrumented)
	_, isTx := rebind(db, tx).(*InstrumentedDB)
	assert.False(t, isTx)
	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstrumentedDBBeginTxOnTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = NewInstrumentedDB(tx).BeginTx(context.Background(), nil)
	assert.Error(t, err)

	mock.ExpectRollback()
	_ = tx.Rollback()
}

// dbCounter reads a juicebox_db_* counter for one operation from the default registry.
func dbCounter(t *testing.T, name, op string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "operation" && label.GetValue() == op {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestInstrumentedDBRecordsPrepare(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	idb := NewInstrumentedDB(db)
	ctx := context.Background()
	queries := dbCounter(t, "juicebox_db_queries_total", operationPrepare)
	failures := dbCounter(t, "juicebox_db_query_errors_total", operationPrepare)

	mock.ExpectPrepare("SELECT id FROM posts").WillBeClosed()
	stmt, err := idb.PrepareContext(ctx, "SELECT id FROM posts WHERE id = $1")
	require.NoError(t, err)
	require.NoError(t, stmt.Close())

	mock.ExpectPrepare("SELECT id FROM tags").WillReturnError(errors.New("syntax error"))
	_, err = idb.PrepareContext(ctx, "SELECT id FROM tags WHERE name = $1")
	assert.Error(t, err)

	assert.Equal(t, queries+2, dbCounter(t, "juicebox_db_queries_total", operationPrepare))
	assert.Equal(t, failures+1, dbCounter(t, "juicebox_db_query_errors_total", operationPrepare))
	assert.NoError(t, mock.ExpectationsWereMet())
}
