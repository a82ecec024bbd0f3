// Package format renders raw feed numerics as display strings.
//
// All functions are pure and total: missing or non-finite input yields the
// placeholder glyph instead of an error.
package format
