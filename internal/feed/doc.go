// Package feed implements the HTTP client for the PreStocks price feed.
//
// The feed is a single unauthenticated endpoint returning a JSON array of
// records. The client performs no retries: the polling interval is the
// de facto retry schedule.
package feed
