// Package postgres provides the PostgreSQL implementations of the
// repositories defined in internal/store, together with the embedded goose
// migrations that create the users, posts, tags and post_tags tables.
//
// Repositories accept any store.DBTX, so the same code runs against the pool,
// an InstrumentedDB wrapper or a transaction obtained through WithTx.
package postgres
