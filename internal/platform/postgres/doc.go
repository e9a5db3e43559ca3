// Package postgres implements the store contracts on PostgreSQL through
// database/sql and the pgx stdlib driver. It also carries the embedded goose
// migrations that create the schema.
//
// Every query runs under the store's query timeout, so a stalled database
// surfaces as context.DeadlineExceeded instead of a hung request.
package postgres
