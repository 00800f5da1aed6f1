// Package sqlstore provides a SQLite-backed implementation of the pendency
// storage surface. It mirrors the semantics of the file-backed store in
// internal/store, including numero assignment, audit history, and the
// optimistic-concurrency protocol, and is used as a queryable replica of the
// shared folder tree when the database mirror is enabled.
package sqlstore
