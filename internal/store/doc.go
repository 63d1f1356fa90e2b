// Package store defines the persistence interfaces for the review scheduling
// engine and the shared helpers (DBTX abstraction, transaction runner, error
// taxonomy) their implementations build on. Concrete implementations live in
// internal/platform/postgres.
package store
