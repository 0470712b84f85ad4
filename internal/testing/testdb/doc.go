// Package testdb manages SurrealDB connections for integration tests.
//
// Every TestDB lives in its own namespace, so tests may run in parallel.
// Point TEST_DB_HOST / TEST_DB_PORT / TEST_DB_USER / TEST_DB_PASSWORD at a
// running instance; without one the tests skip.
package testdb
