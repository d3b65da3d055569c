// Package store provides SQLite-backed durable storage for the formula
// collection and the evaluation history log.
//
// Two tables:
//   - formulas: the named formula collection, unique by name. Listing order
//     is insertion order via the seq column, never timestamps.
//   - evaluations: an append-only log of evaluation results, identified by
//     UUIDv7 so rows sort by creation time.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// The connection pool is limited to a single connection because SQLite only
// supports one writer at a time.
package store
