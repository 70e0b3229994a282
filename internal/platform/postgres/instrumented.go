package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/phrazzld/juicebox-api/internal/platform/metrics"
	"github.com/phrazzld/juicebox-api/internal/store"
)

// InstrumentedDB is a store.DBTX that records Prometheus metrics for every
// statement it forwards. It does not interpret results.
type InstrumentedDB struct {
	db store.DBTX
}

// NewInstrumentedDB wraps db.
func NewInstrumentedDB(db store.DBTX) *InstrumentedDB {
	if db == nil {
		panic("db cannot be nil")
	}
	return &InstrumentedDB{db: db}
}

var _ store.DBTX = (*InstrumentedDB)(nil)
var _ store.TxBeginner = (*InstrumentedDB)(nil)

// ExecContext implements store.DBTX.
func (i *InstrumentedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := i.db.ExecContext(ctx, query, args...)
	observe(query, start, err)
	return res, err
}

// PrepareContext implements store.DBTX. Preparing is recorded under the
// "prepare" operation; executions of the returned *sql.Stmt bypass the wrapper
// and are not observed.
func (i *InstrumentedDB) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	start := time.Now()
	stmt, err := i.db.PrepareContext(ctx, query)
	record(operationPrepare, start, err)
	return stmt, err
}

// QueryContext implements store.DBTX.
func (i *InstrumentedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := i.db.QueryContext(ctx, query, args...)
	observe(query, start, err)
	return rows, err
}

// QueryRowContext implements store.DBTX. sql.ErrNoRows only surfaces on
// Scan, so an empty result is not counted as an error.
func (i *InstrumentedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := i.db.QueryRowContext(ctx, query, args...)
	observe(query, start, row.Err())
	return row
}

// BeginTx starts a transaction on the wrapped pool.
func (i *InstrumentedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	b, ok := i.db.(store.TxBeginner)
	if !ok {
		return nil, errors.New("wrapped connection cannot begin transactions")
	}
	return b.BeginTx(ctx, opts)
}

const operationPrepare = "prepare"

func observe(query string, start time.Time, err error) {
	record(operation(query), start, err)
}

func record(op string, start time.Time, err error) {
	metrics.RecordDBQuery(op, time.Since(start))
	if err != nil {
		metrics.RecordDBError(op)
	}
}

// operation classifies a statement by its leading keyword.
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "other"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete":
		return op
	default:
		return "other"
	}
}

// rebind returns tx, instrumented if db was.
func rebind(db store.DBTX, tx *sql.Tx) store.DBTX {
	if _, ok := db.(*InstrumentedDB); ok {
		return NewInstrumentedDB(tx)
	}
	return tx
}
