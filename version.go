// Package loco is the root of the loco scaffolding engine.
package loco

// Version is the current loco release, set at build time via -ldflags.
var Version = "0.3.0-dev"
