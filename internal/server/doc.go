// Package server exposes the assembled ticker sequence to rendering
// clients.
//
// Endpoints:
//   - GET /api/ticker: current display sequence + lastUpdated (JSON)
//   - GET /ws: websocket push of the sequence after every refresh
//   - GET /healthz: component health
//   - GET /metrics: Prometheus metrics
//
// The server performs no business logic beyond assembly; it serves
// whatever the refresh loop last completed.
package server
