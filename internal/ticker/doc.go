// Package ticker assembles the display sequence consumed by the rendering
// collaborator.
//
// The sequence always starts with a Brand marker, ends with a Footer
// marker, contains one token per matched target, and is concatenated with
// an identical copy of itself so the scroll animation loops without a seam.
package ticker
