// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx driver through database/sql. Schema migrations
// are embedded and applied with goose at startup.
package postgres
