// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests are skipped unless DATABASE_URL (or JUICEBOX_TEST_DB_URL) is set.
// The schema is migrated once per process with the embedded goose
// migrations, and each test runs inside a transaction that is rolled back
// when the test finishes:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        posts := postgres.NewPostgresPostStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
