// Package store projects the guideline catalog onto a SQLite database.
//
// The store is the "remote relational" side of the system: the same
// filter/order semantics the in-memory catalog answers with comparators are
// answered here with dynamically compiled parameterized SQL (see
// internal/querysql). The observable default ordering of queried rows
// matches the catalog's key comparator: the generic level is stored as NULL,
// which SQLite sorts before every integer under level ASC.
//
// The core consumes exactly one executor capability: a parameterized
// statement in, ordered rows or an error out. Store implements it over
// database/sql; query helpers accept any Executor so tests and callers can
// substitute their own.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Failed statements surface as single failed outcomes wrapped with the
// logical operation name; the store never retries.
package store
