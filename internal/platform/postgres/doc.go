// Package postgres provides the PostgreSQL implementation of store.WordStore,
// the database-backed generation backend built on top of it, and the embedded
// goose migrations that create the themes and words tables.
//
// Connections are opened through database/sql with the pgx stdlib driver
// ("pgx"); see Open.
package postgres
