// Package history persists successful feed refreshes to PostgreSQL.
//
// The recorder subscribes to refresh updates and writes one row per feed
// record into the feed_snapshots table using a single pgx batch per
// refresh cycle. Recording is optional; the rest of the pipeline runs
// unchanged when it is disabled.
package history
