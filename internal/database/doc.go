// Package database provides the PostgreSQL connection pool for the
// optional snapshot history recorder.
package database
