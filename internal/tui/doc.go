// Package tui provides the interactive progress view shown while pgload runs
// on a terminal, and detection of whether a terminal is present.
package tui
