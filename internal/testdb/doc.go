//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests open the shared pool with Open, which applies the embedded migrations
// once per test binary, and isolate their writes with WithTx:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil, time.Second)
//	        ...
//	    })
//	}
//
// The connection string is read from TASKBOARD_TEST_DATABASE_URL, falling back
// to DATABASE_URL. Tests are skipped when neither is set.
package testdb
