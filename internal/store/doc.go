// Package store defines the persistence contracts for users, posts and tags.
// Implementations live in internal/platform/postgres; callers depend only on
// the interfaces, the outcome types and the error values declared here.
//
// Every repository can be rebound to a transaction with WithTx so that a
// service can compose several writes inside RunInTransaction.
package store
