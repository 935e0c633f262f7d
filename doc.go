// Package meshin defines the shared types used across the meshin engine: error codes,
// logging setup, configuration options and the retry helper.
//
// meshin is a pattern-driven indirect lookup and partial-sort engine for a Redis-like
// key/value store. A pattern such as "weight_*" or "user_*->age" maps each element of a
// list, set or sorted set to another location in the store; the engine sorts by, fetches
// through, or aggregates over those locations.
//
// The building blocks live in subpackages:
//   - pattern: pattern compiler, indirect lookup resolver and compiled pattern cache.
//   - sorting: sort vector builder and windowed (partial) sort.
//   - ops: the operators (SORT, GROUPSORT, GROUPSUM, unique filters, foreach, ranges).
//   - store, store/inmemory, redis: the typed value model and two backends.
//   - btree: the ordered index backing sorted sets.
//   - command, restapi: argv dispatch and the HTTP surface.
package meshin
