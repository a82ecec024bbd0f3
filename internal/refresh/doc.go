// Package refresh implements the feed Refresh Loop component.
//
// The Refresh Loop:
//   - Fetches the feed once on Start, then every 60 seconds
//   - Replaces the in-memory snapshot atomically on success
//   - Retains the previous snapshot on any failure (stale-but-available)
//   - Fans completed refreshes out to subscribers (push server, history)
package refresh
