// Package store defines the persistence contracts for users and tasks,
// the errors shared by all implementations, and transaction helpers.
// Concrete implementations live in internal/platform/postgres.
package store
