// Package model defines shared data types used across the PreStocks ticker
// pipeline.
//
// Conventions:
//   - Optional feed numerics: *float64 (absent is distinguishable from zero)
//   - Feed records: transient, replaced wholesale on every successful poll
//   - Target list: immutable, fixed at startup
package model
